package router

import (
	"back2u/internal/cache"
	"back2u/internal/database"
	"back2u/internal/handler"
	"back2u/internal/handler/auth"
	"back2u/internal/handler/items"
	"back2u/internal/handler/users"
	"back2u/internal/middleware"

	"github.com/labstack/echo/v4"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	DB            database.Pinger
	Cache         cache.Cache
	Verifier      middleware.Verifier
	Revoker       auth.Revoker
	Authenticator auth.Authenticator
	Accounts      users.Accounts
	Items         items.Service
	Assets        handler.AssetSource
	Cookie        auth.CookieConfig
}

// Setup registers every route under /api.
func Setup(e *echo.Echo, d Deps) {
	api := e.Group("/api")
	requireAuth := middleware.RequireAuth(d.Verifier)

	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))
	api.GET("/assets/:id", handler.GetAssetHandler(d.Assets))

	api.POST("/sessions", auth.LoginHandler(d.Authenticator, d.Cookie))
	api.DELETE("/sessions", auth.LogoutHandler(d.Revoker, d.Cookie))

	api.POST("/users", users.CreateUserHandler(d.Accounts))

	api.GET("/me", users.GetMeHandler(d.Accounts), requireAuth)
	api.PUT("/me", users.UpdateMeHandler(d.Accounts), requireAuth)
	api.PUT("/me/password", users.UpdateMyPasswordHandler(d.Accounts), requireAuth)

	api.GET("/items", items.ListItemsHandler(d.Items))
	api.GET("/items/:id", items.GetItemHandler(d.Items))
	api.POST("/items", items.CreateItemHandler(d.Items), requireAuth)
	api.GET("/items/mine", items.ListMyItemsHandler(d.Items), requireAuth)
	api.GET("/items/dashboard", items.DashboardHandler(d.Items), requireAuth)
	api.PUT("/items/:id", items.UpdateItemHandler(d.Items), requireAuth)
	api.PATCH("/items/:id/resolve", items.ResolveItemHandler(d.Items), requireAuth)
}
