// internal/platform/di/mall/register.go
package mall

import (
	"net/http"

	httpin "github.com/UDAY2232/LackLink/internal/adapters/in/http"
	mallhttp "github.com/UDAY2232/LackLink/internal/adapters/in/http/mall"
	mallhandler "github.com/UDAY2232/LackLink/internal/adapters/in/http/mall/handler"
	"github.com/UDAY2232/LackLink/internal/adapters/in/http/middleware"
)

// Handler constructs every mall handler and returns the full router.
// Pure DI: no method/path branching here.
func (c *Container) Handler() http.Handler {
	var origins []string
	if c.Infra != nil {
		origins = c.Infra.Settings.AllowedOrigins
	}
	return httpin.NewRouter(httpin.RouterDeps{
		Mall:           c.mallDeps(),
		Mode:           c.Mode(),
		AllowedOrigins: origins,
	})
}

func (c *Container) mallDeps() mallhttp.Deps {
	return mallhttp.Deps{
		Auth:     mallhandler.NewAuthHandler(c.AuthUC),
		Catalog:  mallhandler.NewCatalogHandler(c.CatalogQ, c.ReviewUC),
		Cart:     mallhandler.NewCartHandler(),
		Wishlist: mallhandler.NewWishlistHandler(),
		Order:    mallhandler.NewOrderHandler(c.Workflow, c.OrderQ),
		User:     mallhandler.NewUserHandler(c.UserUC),
		Seller:   mallhandler.NewSellerHandler(c.SellerQ, c.OrderUC, c.ProductUC, c.UserUC),
		UserAuth: &middleware.UserAuthMiddleware{Auth: c.AuthUC},
	}
}
