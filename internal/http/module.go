// Package http wires the domain modules into a single gin server. Each
// module registers its own routes; the router stays ignorant of endpoints.
package http

import (
	"geoas_backend/platform/config"

	"github.com/gin-gonic/gin"
)

// Module is implemented by every HTTP-facing bounded context.
type Module interface {
	// Name identifies the module in startup logs.
	Name() string
	// RegisterRoutes mounts the module's endpoints onto the shared groups.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext bundles the route groups and middleware a module may mount
// onto, so RegisterRoutes keeps a single-parameter signature.
type RouterContext struct {
	// Engine is the root gin engine, for modules needing engine-level routes.
	Engine *gin.Engine
	// V1 is the public /api/v1 group.
	V1 *gin.RouterGroup
	// Protected is the JWT-guarded group under /api/v1.
	Protected *gin.RouterGroup
	// Config carries the JWT settings for modules building their own guards.
	Config config.JWTConfig
	// AuthMiddleware is the bearer-token check used by Protected.
	AuthMiddleware gin.HandlerFunc
}
