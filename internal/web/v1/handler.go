// Package v1 is the HTTP boundary: it binds and validates request
// bodies, resolves the session cookie to a user identity, invokes the
// logic layer and maps its sentinel errors to status codes. No business
// rules live here.
package v1

import (
	"github.com/gin-gonic/gin"

	logicv1 "github.com/meditrust/storefront/internal/logic/v1"
	"github.com/meditrust/storefront/internal/upstream"
)

// CookieConfig is the session cookie contract: HTTP-only, set at login,
// cleared at logout.
type CookieConfig struct {
	Name   string
	MaxAge int
	Secure bool
}

// Handler groups the HTTP handlers for the storefront API.
// Dependencies are injected via the constructor — no global state.
type Handler struct {
	auth     *logicv1.AuthService
	cart     *logicv1.CartService
	catalog  *logicv1.CatalogService
	upstream *upstream.Client
	cookie   CookieConfig
}

// NewHandler creates a new Handler with the given services.
func NewHandler(
	auth *logicv1.AuthService,
	cart *logicv1.CartService,
	catalog *logicv1.CatalogService,
	upstream *upstream.Client,
	cookie CookieConfig,
) *Handler {
	return &Handler{
		auth:     auth,
		cart:     cart,
		catalog:  catalog,
		upstream: upstream,
		cookie:   cookie,
	}
}

// RegisterRoutes registers every storefront route on the given engine.
// Cart routes sit behind the session middleware; everything the
// middleware rejects never reaches the cart service.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/auth-status", h.AuthStatus)

	api := r.Group("/api")
	{
		api.GET("/products", h.ListProducts)
		api.POST("/verify-license", h.VerifyLicense)
		api.POST("/predict-demand", h.PredictDemand)

		cart := api.Group("/cart", h.RequireSession())
		{
			cart.POST("", h.AddItem)
			cart.GET("", h.ListItems)
			cart.POST("/update", h.UpdateQuantity)
			cart.DELETE("/remove/:productId", h.RemoveItem)
		}
	}
}
