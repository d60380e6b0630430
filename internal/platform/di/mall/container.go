// internal/platform/di/mall/container.go
package mall

import (
	"context"
	"errors"
	"log"

	consolequery "github.com/UDAY2232/LackLink/internal/application/query/console"
	mallquery "github.com/UDAY2232/LackLink/internal/application/query/mall"
	usecase "github.com/UDAY2232/LackLink/internal/application/usecase"
	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
	shared "github.com/UDAY2232/LackLink/internal/platform/di/shared"
)

const (
	ModeOnline  = "online"
	ModeOffline = "offline"
)

// Container is Mall DI container.
// Pure DI: build deps only. Routing lives in register.go.
type Container struct {
	Infra *shared.Infra

	Provider authdom.Provider
	Registry *usecase.SessionRegistry

	// Usecases
	AuthUC    *usecase.AuthUsecase
	UserUC    *usecase.UserUsecase
	ProductUC *usecase.ProductUsecase
	ReviewUC  *usecase.ReviewUsecase
	OrderUC   *usecase.OrderUsecase
	Workflow  *usecase.OrderWorkflow

	// Queries
	CatalogQ *mallquery.CatalogQuery
	OrderQ   *mallquery.OrderQuery
	SellerQ  *consolequery.SellerQuery

	identityOnline bool
}

func NewContainer(ctx context.Context, infra *shared.Infra) (*Container, error) {
	if infra == nil || infra.Store == nil {
		return nil, errors.New("di.mall: infra or store is nil")
	}
	st := infra.Store
	timeout := infra.Settings.RemoteTimeout

	c := &Container{Infra: infra}
	c.Provider, c.identityOnline = buildIdentityProvider(ctx, infra)

	c.Registry = usecase.NewSessionRegistry(
		st.Users(), st.Products(), st.CartItems(), st.Wishlists(),
		timeout, infra.Settings.SessionIdleTTL,
	)

	c.AuthUC = usecase.NewAuthUsecase(c.Provider, c.Registry, timeout)
	c.UserUC = usecase.NewUserUsecase(st.Users(), timeout)
	c.ProductUC = usecase.NewProductUsecase(st.Products(), buildImageUploader(infra), timeout)
	c.ReviewUC = usecase.NewReviewUsecase(st.Reviews(), st.Products(), timeout)
	c.OrderUC = usecase.NewOrderUsecase(st.Orders(), st.OrderItems(), st.Products(), timeout)
	c.Workflow = usecase.NewOrderWorkflow(usecase.OrderWorkflowDeps{
		Orders:     st.Orders(),
		OrderItems: st.OrderItems(),
		Products:   st.Products(),
		Users:      st.Users(),
		CartItems:  st.CartItems(),
		Guard:      buildCheckoutGuard(infra),
		Mailer:     buildOrderMailer(infra),
		Timeout:    timeout,
	})

	c.CatalogQ = mallquery.NewCatalogQuery(st.Products(), st.Categories(), st.Users(), st.Reviews(), timeout)
	c.OrderQ = mallquery.NewOrderQuery(st.Orders(), st.OrderItems(), st.Products(), timeout)
	c.SellerQ = consolequery.NewSellerQuery(st.Products(), st.Orders(), st.OrderItems(), st.Users(), timeout)

	log.Printf("[di.mall] container ready store=%s identity_online=%t mode=%s", st.Mode(), c.identityOnline, c.Mode())
	return c, nil
}

// Mode is "offline" when the store or the identity provider runs without its backend.
func (c *Container) Mode() string {
	if c == nil || c.Infra == nil || c.Infra.StoreOffline || !c.identityOnline {
		return ModeOffline
	}
	return ModeOnline
}

func (c *Container) Close() error {
	if c == nil || c.Infra == nil {
		return nil
	}
	return c.Infra.Close()
}
