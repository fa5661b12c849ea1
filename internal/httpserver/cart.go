package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ecommerce-shop/internal/domain"
)

type cartManager interface {
	Snapshot() domain.CartState
	AddItem(ctx context.Context, product domain.ProductSnapshot, quantity int) (domain.CartState, error)
	UpdateQuantity(ctx context.Context, productID string, quantity int) (domain.CartState, error)
	RemoveItem(ctx context.Context, productID string) (domain.CartState, error)
	Clear(ctx context.Context) (domain.CartState, error)
}

type addItemRequest struct {
	Product  productRequest `json:"product"`
	Quantity *int           `json:"quantity"`
}

type productRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Brand      string `json:"brand"`
	PriceCents int64  `json:"priceCents"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func getCartHandler(cart cartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cart.Snapshot())
	}
}

func addItemHandler(cart cartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(req.Product.ID) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product id required"})
			return
		}
		if req.Product.PriceCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		state, err := cart.AddItem(c.Request.Context(), domain.ProductSnapshot{
			ID:         req.Product.ID,
			Name:       req.Product.Name,
			Category:   req.Product.Category,
			Brand:      req.Product.Brand,
			PriceCents: req.Product.PriceCents,
		}, quantity)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidQuantity) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "add item failed"})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func updateItemHandler(cart cartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}

		state, err := cart.UpdateQuantity(c.Request.Context(), c.Param("productId"), *req.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not in cart"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update quantity failed"})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func removeItemHandler(cart cartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := cart.RemoveItem(c.Request.Context(), c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "remove item failed"})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func clearCartHandler(cart cartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := cart.Clear(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "clear cart failed"})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}
