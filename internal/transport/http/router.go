package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Evaristo-Paulo/api-ecommerce/internal/handlers"
	authmw "github.com/Evaristo-Paulo/api-ecommerce/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	CartHandler    *handlers.CartHandler
	SearchHandler  *handlers.SearchHandler
	Guard          *authmw.SessionGuard
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/login", d.AuthHandler.Login)
	api.POST("/logout", d.AuthHandler.LogOut, d.Guard.RequireLogin)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("/add", d.ProductHandler.AddProduct, d.Guard.RequireLogin)
	products.PUT("/update/:id", d.ProductHandler.UpdateProduct, d.Guard.RequireLogin)
	products.DELETE("/delete/:id", d.ProductHandler.DeleteProduct, d.Guard.RequireLogin)

	if d.SearchHandler != nil {
		products.GET("/search", d.SearchHandler.Search)
	}

	cart := api.Group("/cart", d.Guard.RequireLogin)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/add/:productId", d.CartHandler.AddToCart)
	cart.DELETE("/remove/:productId", d.CartHandler.RemoveFromCart)
	cart.POST("/checkout", d.CartHandler.Checkout)
}
