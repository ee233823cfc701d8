package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (h *Handler) getCart(c *gin.Context) {
	ident := identityFrom(c)

	view, err := h.carts.GetCart(c.Request.Context(), ident.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) addCartItem(c *gin.Context) {
	ident := identityFrom(c)

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID or quantity."})
		return
	}

	view, err := h.carts.AddItem(c.Request.Context(), ident.UserID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) updateCartItem(c *gin.Context) {
	ident := identityFrom(c)

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req cartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity."})
		return
	}

	view, err := h.carts.UpdateItemQuantity(c.Request.Context(), ident.UserID, itemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) removeCartItem(c *gin.Context) {
	ident := identityFrom(c)

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	view, err := h.carts.RemoveItem(c.Request.Context(), ident.UserID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) clearCart(c *gin.Context) {
	ident := identityFrom(c)

	if err := h.carts.ClearCart(c.Request.Context(), ident.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully."})
}
