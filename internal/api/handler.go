package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Nishantvidhuri/storebackend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	tokens     TokenParser
	auth       *service.AuthService
	carts      *service.CartService
	orders     *service.OrderService
	payments   *service.PaymentService
	products   *service.ProductService
	complaints *service.ComplaintService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	auth *service.AuthService,
	carts *service.CartService,
	orders *service.OrderService,
	payments *service.PaymentService,
	products *service.ProductService,
	complaints *service.ComplaintService,
) *Handler {
	return &Handler{
		tokens:     auth,
		auth:       auth,
		carts:      carts,
		orders:     orders,
		payments:   payments,
		products:   products,
		complaints: complaints,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/register", h.register)
		v1.POST("/auth/login", h.login)
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)
	}

	authn := v1.Group("", h.requireAuth)
	{
		authn.GET("/auth/me", h.getMe)
		authn.PUT("/auth/profile", h.updateProfile)

		authn.GET("/cart", h.getCart)
		authn.POST("/cart", h.addCartItem)
		authn.DELETE("/cart", h.clearCart)
		authn.PUT("/cart/:itemId", h.updateCartItem)
		authn.DELETE("/cart/:itemId", h.removeCartItem)

		authn.POST("/orders", h.placeOrder)
		authn.GET("/orders/my", h.getMyOrders)
		authn.POST("/orders/create-payment", h.createPayment)
		authn.POST("/orders/verify-payment", h.verifyPayment)

		authn.POST("/complaints", h.createComplaint)
		authn.GET("/complaints/my", h.getMyComplaints)
	}

	admin := authn.Group("", h.requireAdmin)
	{
		admin.GET("/orders", h.getAllOrders)
		admin.GET("/orders/export", h.exportOrders)
		admin.GET("/orders/:id", h.getOrder)
		admin.PUT("/orders/:id", h.updateOrder)

		admin.GET("/auth/users", h.listUsers)
		admin.GET("/auth/users/:id", h.getUser)
		admin.PUT("/auth/users/:id", h.adminUpdateUser)
		admin.DELETE("/auth/users/:id", h.deleteUser)

		admin.POST("/products", h.createProduct)
		admin.PUT("/products/:id", h.updateProduct)
		admin.DELETE("/products/:id", h.deleteProduct)

		admin.GET("/complaints", h.listAllComplaints)
		admin.PUT("/complaints/:id", h.updateComplaint)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// respondError maps service errors onto HTTP status codes
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrEmailRegistered),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidSignature):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrComplaintNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
