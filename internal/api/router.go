package api

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type Handlers struct {
	Auth        *AuthHandler
	Product     *ProductHandler
	Category    *CategoryHandler
	Cart        *CartHandler
	Checkout    *CheckoutHandler
	Order       *OrderHandler
	Transaction *TransactionHandler
	Report      *ReportHandler
	Chat        *ChatHandler
	Admin       *AdminHandler
}

// RegisterRoutes wires every endpoint. Everything past the auth endpoints
// requires a valid access token; admin routes stack RequireAdmin on top.
func RegisterRoutes(e *echo.Echo, jwtSecret string, h *Handlers) {
	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)
	e.POST("/auth/token/refresh", h.Auth.Refresh)
	e.POST("/auth/password-reset", h.Auth.PasswordReset)

	authed := e.Group("", JWTMiddleware(jwtSecret))
	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/profile", h.Auth.Profile)
	authed.PUT("/auth/profile", h.Auth.UpdateProfile)

	authed.GET("/products", h.Product.List)
	authed.POST("/products", h.Product.Create)
	authed.GET("/products/:id", h.Product.Get)
	authed.PUT("/products/:id", h.Product.Update)
	authed.DELETE("/products/:id", h.Product.Delete)

	authed.GET("/product-images", h.Product.ListImages)
	authed.POST("/product-images", h.Product.AddImage)
	authed.PUT("/product-images/:id", h.Product.UpdateImage)
	authed.DELETE("/product-images/:id", h.Product.DeleteImage)

	authed.GET("/categories", h.Category.List)
	authed.GET("/categories/:id", h.Category.Get)
	authed.POST("/categories", h.Category.Create)
	authed.PUT("/categories/:id", h.Category.Update)
	authed.DELETE("/categories/:id", h.Category.Delete)

	authed.GET("/cart-items", h.Cart.List)
	authed.POST("/cart-items", h.Cart.Add)
	authed.DELETE("/cart-items/:id", h.Cart.Remove)
	authed.DELETE("/cart/empty", h.Cart.Empty)

	authed.POST("/checkout", h.Checkout.Checkout)

	authed.GET("/orders", h.Order.List)
	authed.POST("/orders", h.Order.Create)
	authed.GET("/orders/:id", h.Order.Get)
	authed.PUT("/orders/:id/status", h.Order.UpdateStatus, RequireAdmin)
	authed.DELETE("/orders/:id", h.Order.Delete, RequireAdmin)

	authed.GET("/transactions", h.Transaction.List)
	authed.POST("/transactions", h.Transaction.Create)
	authed.GET("/transactions/:id", h.Transaction.Get)

	authed.POST("/reports", h.Report.Create)
	authed.GET("/reports", h.Report.List)
	authed.GET("/reports/:id", h.Report.Get)
	authed.PUT("/reports/:id/status", h.Report.UpdateStatus)
	authed.DELETE("/reports/:id", h.Report.Delete)

	authed.GET("/conversations", h.Chat.ListConversations)
	authed.POST("/conversations", h.Chat.StartConversation)
	authed.GET("/conversations/:id", h.Chat.GetConversation)
	authed.GET("/conversations/:id/messages", h.Chat.ListMessages)
	authed.POST("/messages", h.Chat.SendMessage)

	admin := authed.Group("/admin", RequireAdmin)
	admin.GET("/users", h.Admin.ListUsers)
	admin.POST("/users", h.Admin.CreateUser)
	admin.GET("/users/:id", h.Admin.GetUser)
	admin.PUT("/users/:id", h.Admin.UpdateUser)
	admin.DELETE("/users/:id", h.Admin.DeleteUser)
	admin.GET("/products", h.Admin.ListProducts)
	admin.GET("/products/:id", h.Product.Get)
	admin.POST("/products", h.Product.Create)
	admin.PUT("/products/:id", h.Product.Update)
	admin.DELETE("/products/:id", h.Product.Delete)
	admin.GET("/reports", h.Report.List)
	admin.GET("/reports/:id", h.Report.Get)
	admin.PUT("/reports/:id/status", h.Report.UpdateStatus)
	admin.DELETE("/reports/:id", h.Report.Delete)
}
