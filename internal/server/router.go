// Package server assembles the HTTP surface: the middleware chain, the route
// table and the per-route permission requirements.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/example/coffeeshop-api/internal/apierror"
	"github.com/example/coffeeshop-api/internal/auth"
	"github.com/example/coffeeshop-api/internal/drinks"
	"github.com/example/coffeeshop-api/internal/httpx"
	"github.com/example/coffeeshop-api/internal/management"
)

// Permissions required per route.
const (
	PermGetDrinksDetail = "get:drinks-detail"
	PermPostDrinks      = "post:drinks"
	PermPatchDrinks     = "patch:drinks"
	PermDeleteDrinks    = "delete:drinks"
	PermManageBaristas  = "manage:baristas"
)

// Dependencies carries everything the router needs.
type Dependencies struct {
	Logger         logrus.FieldLogger
	Auth           *auth.Middleware
	Drinks         *drinks.Handler
	Management     *management.Handler
	FrontendOrigin string
}

// NewRouter wires the middleware chain and the route table. Authorization is
// applied per route; the error translator is the single place error responses
// are produced.
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpx.RequestID())
	router.Use(httpx.RequestLogger(deps.Logger))
	router.Use(corsMiddleware(deps.FrontendOrigin))
	router.Use(apierror.Translator(deps.Logger))

	router.GET("/drinks", deps.Drinks.List)
	router.GET("/drinks-detail",
		deps.Auth.RequirePermission(PermGetDrinksDetail), deps.Drinks.ListDetail)
	router.POST("/drinks",
		deps.Auth.RequirePermission(PermPostDrinks), deps.Drinks.Create)
	router.PATCH("/drinks/:id",
		deps.Auth.RequirePermission(PermPatchDrinks), deps.Drinks.Update)
	router.DELETE("/drinks/:id",
		deps.Auth.RequirePermission(PermDeleteDrinks), deps.Drinks.Delete)

	router.GET("/users",
		deps.Auth.RequirePermission(PermManageBaristas), deps.Management.ListUsers)
	router.GET("/users/:id/roles",
		deps.Auth.RequirePermission(PermManageBaristas), deps.Management.ListUserRoles)
	router.PATCH("/baristas/:id",
		deps.Auth.RequirePermission(PermManageBaristas), deps.Management.SetBaristaRole)

	return router
}

func corsMiddleware(origin string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins: []string{origin},
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch,
			http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}
	return cors.New(cfg)
}
