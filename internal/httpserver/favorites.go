package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ecommerce-shop/internal/domain"
)

type favoritesManager interface {
	Snapshot(ctx context.Context) domain.FavoritesState
	IsFavorite(ctx context.Context, productID string) bool
	AddFavorite(ctx context.Context, productID string) (domain.FavoriteEntry, error)
	RemoveFavorite(ctx context.Context, productID string) (bool, error)
	ToggleFavorite(ctx context.Context, productID string) (bool, *domain.FavoriteEntry, error)
	ClearFavorites(ctx context.Context) error
}

func getFavoritesHandler(favorites favoritesManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, favorites.Snapshot(c.Request.Context()))
	}
}

func getFavoriteHandler(favorites favoritesManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("productId")
		c.JSON(http.StatusOK, gin.H{
			"productId":  productID,
			"isFavorite": favorites.IsFavorite(c.Request.Context(), productID),
		})
	}
}

func addFavoriteHandler(favorites favoritesManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		entry, err := favorites.AddFavorite(c.Request.Context(), c.Param("productId"))
		if err != nil {
			writeFavoritesError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

func toggleFavoriteHandler(favorites favoritesManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		isFavorite, entry, err := favorites.ToggleFavorite(c.Request.Context(), c.Param("productId"))
		if err != nil {
			writeFavoritesError(c, err)
			return
		}
		resp := gin.H{"isFavorite": isFavorite}
		if entry != nil {
			resp["favorite"] = entry
		}
		c.JSON(http.StatusOK, resp)
	}
}

func removeFavoriteHandler(favorites favoritesManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed, err := favorites.RemoveFavorite(c.Request.Context(), c.Param("productId"))
		if err != nil {
			writeFavoritesError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": removed})
	}
}

func clearFavoritesHandler(favorites favoritesManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := favorites.ClearFavorites(c.Request.Context()); err != nil {
			writeFavoritesError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// writeFavoritesError maps the favorites error taxonomy onto HTTP. A
// storage write failure is reported so the client can warn the user the
// change may not persist.
func writeFavoritesError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateFavorite):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "favorites change may not persist: " + err.Error()})
	}
}
