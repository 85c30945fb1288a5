package handlers

import (
	"errors"
	"net/http"

	"bakehouse/services/cart"
	"bakehouse/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// cartSessionHeader carries the cart session ID issued on first add.
const cartSessionHeader = "X-Cart-Session"

// CartHandler exposes the draft-cart endpoints.
type CartHandler struct {
	Svc cart.CartService
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(svc cart.CartService) *CartHandler {
	return &CartHandler{Svc: svc}
}

// GetCart returns the caller's cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := c.GetHeader(cartSessionHeader)
	if sessionID == "" {
		utils.JSONError(c, http.StatusNotFound, "no cart session", "")
		return
	}

	found, err := h.Svc.Get(sessionID)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			utils.JSONError(c, http.StatusNotFound, "cart not found or expired", "")
			return
		}
		getLogger(c).Error("cart fetch failed", zap.String("cartSession", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "could not load cart", "please retry")
		return
	}
	c.JSON(http.StatusOK, found)
}

// AddItem adds a product to the cart, creating the cart session on first use.
func (h *CartHandler) AddItem(c *gin.Context) {
	logger := getLogger(c)

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid cart payload", err.Error())
		return
	}

	updated, err := h.Svc.AddItem(c.GetHeader(cartSessionHeader), input.ProductID, input.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrUnknownProduct) {
			utils.JSONError(c, http.StatusNotFound, "unknown product", input.ProductID)
			return
		}
		logger.Error("cart add failed", zap.String("productID", input.ProductID), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "could not add to cart", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SetQuantity updates a line's quantity; zero removes the line.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	logger := getLogger(c)

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  *int   `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid cart payload", err.Error())
		return
	}

	updated, err := h.Svc.SetQuantity(c.GetHeader(cartSessionHeader), input.ProductID, *input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrCartNotFound):
			utils.JSONError(c, http.StatusNotFound, "cart not found or expired", "")
		case errors.Is(err, cart.ErrUnknownProduct):
			utils.JSONError(c, http.StatusNotFound, "product not in cart", input.ProductID)
		default:
			logger.Error("cart update failed", zap.String("productID", input.ProductID), zap.Error(err))
			utils.JSONError(c, http.StatusBadRequest, "could not update cart", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ClearCart tears down the cart session.
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := c.GetHeader(cartSessionHeader)
	if sessionID == "" {
		c.JSON(http.StatusOK, gin.H{"cleared": true})
		return
	}
	if err := h.Svc.Clear(sessionID); err != nil {
		getLogger(c).Error("cart clear failed", zap.String("cartSession", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "could not clear cart", "please retry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
