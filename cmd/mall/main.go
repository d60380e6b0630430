// cmd/mall/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/UDAY2232/LackLink/internal/adapters/in/http/middleware"
	"github.com/UDAY2232/LackLink/internal/infra/telemetry"
	mallDI "github.com/UDAY2232/LackLink/internal/platform/di/mall"
	shared "github.com/UDAY2232/LackLink/internal/platform/di/shared"
)

// atomicHandler allows swapping the underlying handler at runtime safely.
type atomicHandler struct {
	v atomic.Value // stores http.Handler
}

func newAtomicHandler(initial http.Handler) *atomicHandler {
	ah := &atomicHandler{}
	if initial == nil {
		initial = http.NotFoundHandler()
	}
	ah.v.Store(initial)
	return ah
}

func (h *atomicHandler) Store(next http.Handler) {
	if next == nil {
		return
	}
	h.v.Store(next)
}

func (h *atomicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.v.Load().(http.Handler).ServeHTTP(w, r)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err == nil {
		log.Printf("[boot] loaded .env")
	}

	infra, err := shared.NewInfra(ctx)
	if err != nil {
		log.Fatalf("[boot] shared infra init failed: %v", err)
	}
	cfg := infra.Config

	shutdownTracing, err := telemetry.InitTracing(ctx, "lacklink-mall", cfg.OTLPEndpoint)
	if err != nil {
		log.Printf("[boot] WARN: tracing init failed: %v", err)
	}

	// Listen before the container is ready; /healthz answers "starting" until then.
	bootMux := http.NewServeMux()
	bootMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"status":"starting"}`))
	})
	switcher := newAtomicHandler(middleware.CORS(infra.Settings.AllowedOrigins)(bootMux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(switcher, "lacklink-mall"),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[boot] listening on :%s (mall)", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	var cont *mallDI.Container
	cont, err = mallDI.NewContainer(ctx, infra)
	if err != nil {
		_ = infra.Close()
		log.Fatalf("[boot] mall di init failed: %v", err)
	}

	// Finish checkouts interrupted by a previous shutdown.
	if n, err := cont.Workflow.ReconcilePending(ctx); err != nil {
		log.Printf("[boot] WARN: reconcile pending orders: %v", err)
	} else if n > 0 {
		log.Printf("[boot] reconciled %d pending orders", n)
	}

	go cont.Registry.Run(ctx, time.Minute)

	switcher.Store(cont.Handler())
	log.Printf("[boot] handler switched to mall router mode=%s", cont.Mode())

	select {
	case <-ctx.Done():
		log.Printf("[boot] signal received; shutting down...")
	case err := <-serveErr:
		log.Printf("[boot] server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[boot] server shutdown error: %v", err)
	}
	if err := cont.Close(); err != nil {
		log.Printf("[boot] container close error: %v", err)
	}
	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("[boot] tracing shutdown error: %v", err)
		}
	}
	log.Printf("[boot] server stopped")
}
