package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user/cinehunt/internal/handler"
	"github.com/user/cinehunt/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(h.Sessions))
	{
		// ==================== 目录 ====================
		movies := api.Group("/movies")
		{
			movies.GET("/popular", h.Popular)
			movies.GET("/top-rated", h.TopRated)
			movies.GET("/now-playing", h.NowPlaying)
			movies.GET("/search", h.SearchMovies)
			movies.GET("/:id", h.MovieDetail)
		}

		// ==================== 认证 ====================
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
			auth.GET("/me", h.Me)
		}

		// ==================== 收藏（需要登录）====================
		favorites := api.Group("/favorites")
		favorites.Use(middleware.RequireAuth(h.Sessions))
		{
			favorites.GET("", h.ListFavorites)
			favorites.GET("/details", h.FavoriteDetails)
			favorites.POST("", h.ToggleFavorite)
		}
	}
}
