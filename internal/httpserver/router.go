package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ecommerce-shop/internal/kv"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, store kv.Store, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = deps.CORSOrigins
		corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
		corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "X-User-ID"}
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(store))

	cartGroup := router.Group("/cart")
	{
		cartGroup.GET("", getCartHandler(deps.Cart))
		cartGroup.DELETE("", clearCartHandler(deps.Cart))
		cartGroup.POST("/items", addItemHandler(deps.Cart))
		cartGroup.PATCH("/items/:productId", updateItemHandler(deps.Cart))
		cartGroup.DELETE("/items/:productId", removeItemHandler(deps.Cart))
	}

	favGroup := router.Group("/favorites")
	favGroup.Use(identityMiddleware())
	{
		favGroup.GET("", getFavoritesHandler(deps.Favorites))
		favGroup.DELETE("", clearFavoritesHandler(deps.Favorites))
		favGroup.GET("/:productId", getFavoriteHandler(deps.Favorites))
		favGroup.POST("/:productId", addFavoriteHandler(deps.Favorites))
		favGroup.POST("/:productId/toggle", toggleFavoriteHandler(deps.Favorites))
		favGroup.DELETE("/:productId", removeFavoriteHandler(deps.Favorites))
	}

	return router
}
