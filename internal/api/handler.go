package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"relief-coordinator/internal/catalog"
	"relief-coordinator/internal/geo"
	"relief-coordinator/internal/kits"
	"relief-coordinator/internal/models"
	"relief-coordinator/internal/order"
	"relief-coordinator/internal/pack"
	"relief-coordinator/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers. Stores arrive from the composition
// root; nothing here owns ambient singletons.
type Handler struct {
	catalog  *catalog.Store
	pkg      *pack.Store
	kits     *kits.Store
	pipeline *order.Pipeline
	current  *order.CurrentOrder
	locator  *geo.Locator
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalogStore *catalog.Store,
	pkgStore *pack.Store,
	kitStore *kits.Store,
	pipeline *order.Pipeline,
	current *order.CurrentOrder,
	locator *geo.Locator,
) *Handler {
	return &Handler{
		catalog:  catalogStore,
		pkg:      pkgStore,
		kits:     kitStore,
		pipeline: pipeline,
		current:  current,
		locator:  locator,
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
		v1.GET("/resources", h.listResources)

		v1.GET("/package", h.getPackage)
		v1.POST("/package", h.addToPackage)
		v1.PUT("/package/:id/quantity", h.updateQuantity)
		v1.DELETE("/package/:id", h.removeFromPackage)
		v1.POST("/package/clear", h.clearPackage)

		v1.GET("/kits", h.listKits)
		v1.POST("/kits", h.saveKit)
		v1.DELETE("/kits/:index", h.deleteKit)

		v1.POST("/orders", h.submitOrder)
		v1.POST("/orders/retry", h.retryOrder)
		v1.GET("/orders/current", h.currentOrder)

		v1.POST("/locate", h.locate)
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) listResources(c *gin.Context) {
	resources, err := h.catalog.Resources(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load catalog",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

func (h *Handler) getPackage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"entries":     h.pkg.Entries(),
		"total_items": h.pkg.TotalItems(),
	})
}

type addToPackageRequest struct {
	ResourceID string `json:"resource_id" binding:"required"`
}

func (h *Handler) addToPackage(c *gin.Context) {
	var req addToPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	item, err := h.catalog.ResourceByID(c.Request.Context(), req.ResourceID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Resource not found",
			"details": err.Error(),
		})
		return
	}

	quantity := h.pkg.AddResource(*item)
	c.JSON(http.StatusOK, gin.H{
		"resource_id": item.ID,
		"quantity":    quantity,
		"total_items": h.pkg.TotalItems(),
	})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *Handler) updateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	// out-of-range values and unknown ids are ignored, not errors
	h.pkg.UpdateQuantity(c.Param("id"), req.Quantity)
	c.JSON(http.StatusOK, gin.H{
		"quantity":    h.pkg.ResourceQuantity(c.Param("id")),
		"total_items": h.pkg.TotalItems(),
	})
}

func (h *Handler) removeFromPackage(c *gin.Context) {
	h.pkg.RemoveResource(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"total_items": h.pkg.TotalItems()})
}

func (h *Handler) clearPackage(c *gin.Context) {
	h.pkg.ClearPackage()
	c.JSON(http.StatusOK, gin.H{"total_items": 0})
}

func (h *Handler) listKits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"kits": h.kits.Kits()})
}

type saveKitRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) saveKit(c *gin.Context) {
	var req saveKitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if !h.kits.SaveKit(req.Name, h.pkg.Entries()) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Kit needs a non-empty name and a non-empty package",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"kits": h.kits.Len()})
}

func (h *Handler) deleteKit(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid kit index"})
		return
	}

	if !h.kits.DeleteKit(index) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Kit not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"kits": h.kits.Len()})
}

type submitOrderRequest struct {
	order.FormValues
	IsPackage bool   `json:"is_package"`
	ItemID    string `json:"item_id"`
	Offline   bool   `json:"offline"`
}

// resolveItems picks the item list for a submission: the whole package
// for package orders, otherwise the single selected catalog item.
func (h *Handler) resolveItems(c *gin.Context, req *submitOrderRequest) ([]models.PackageEntry, bool) {
	if req.IsPackage {
		return h.pkg.Entries(), true
	}

	if req.ItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "item_id is required for single-item orders",
		})
		return nil, false
	}

	item, err := h.catalog.ResourceByID(c.Request.Context(), req.ItemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Resource not found",
			"details": err.Error(),
		})
		return nil, false
	}

	return []models.PackageEntry{{ResourceItem: *item, Quantity: 1}}, true
}

func (h *Handler) submitOrder(c *gin.Context) {
	var req submitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	items, ok := h.resolveItems(c, &req)
	if !ok {
		return
	}

	result, err := h.pipeline.Submit(c.Request.Context(), req.FormValues, items, req.IsPackage)
	if err != nil {
		h.renderSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *Handler) retryOrder(c *gin.Context) {
	var req submitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	items, ok := h.resolveItems(c, &req)
	if !ok {
		return
	}

	result, err := h.pipeline.RetrySubmit(c.Request.Context(), req.FormValues, items, req.Offline)
	if err != nil {
		h.renderSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *Handler) renderSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case order.IsBusinessRejection(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Order was declined",
			"details": err.Error(),
		})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Order could not be placed, your package is unchanged",
			"details": err.Error(),
		})
	}
}

func (h *Handler) currentOrder(c *gin.Context) {
	result, ok := h.current.Order()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No order placed yet"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) locate(c *gin.Context) {
	result, err := h.locator.Locate(c.Request.Context())
	if err != nil {
		var locErr *geo.Error
		if errors.As(err, &locErr) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":  locErr.Error(),
				"reason": string(locErr.Reason),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
