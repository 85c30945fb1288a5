package handlers

import (
	"errors"
	"net/http"

	"bakehouse/models"
	"bakehouse/services/catalog"
	"bakehouse/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler exposes the storefront product catalog.
type CatalogHandler struct {
	Svc catalog.CatalogService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Svc: svc}
}

// ListProducts returns active products, optionally filtered by category.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.Svc.ListProducts(c.Query("category"))
	if err != nil {
		getLogger(c).Error("product listing failed", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "could not load products", "please retry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct returns one product.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	product, err := h.Svc.GetProduct(id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			utils.JSONError(c, http.StatusNotFound, "product not found", id)
			return
		}
		getLogger(c).Error("product fetch failed", zap.String("productID", id), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "could not load product", "please retry")
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a catalog product (admin only).
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid product payload", err.Error())
		return
	}

	created, err := h.Svc.CreateProduct(&product)
	if err != nil {
		getLogger(c).Error("product creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "could not create product", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProduct replaces a catalog product (admin only).
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid product payload", err.Error())
		return
	}
	product.ID = c.Param("id")

	updated, err := h.Svc.UpdateProduct(&product)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			utils.JSONError(c, http.StatusNotFound, "product not found", product.ID)
			return
		}
		getLogger(c).Error("product update failed", zap.String("productID", product.ID), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "could not update product", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteProduct removes a catalog product (admin only).
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.DeleteProduct(id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			utils.JSONError(c, http.StatusNotFound, "product not found", id)
			return
		}
		getLogger(c).Error("product deletion failed", zap.String("productID", id), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "could not delete product", "please retry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
