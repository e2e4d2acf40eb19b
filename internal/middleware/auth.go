package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/user/cinehunt/internal/model"
	"github.com/user/cinehunt/internal/repository"
)

// RequireAuth 必须登录中间件
func RequireAuth(sessions *repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := extractPayload(c, sessions)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
			c.Abort()
			return
		}

		// 将用户信息存入上下文
		c.Set("user_id", payload.ID)
		c.Set("email", payload.Email)
		c.Set("name", payload.Name)

		c.Next()
	}
}

// OptionalAuth 可选登录中间件（不强制要求登录）
func OptionalAuth(sessions *repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if payload, err := extractPayload(c, sessions); err == nil {
			c.Set("user_id", payload.ID)
			c.Set("email", payload.Email)
			c.Set("name", payload.Name)
		}
		c.Next()
	}
}

// extractPayload 从 Cookie 或 Header 中提取并校验 Token
func extractPayload(c *gin.Context, sessions *repository.SessionRepository) (*model.TokenPayload, error) {
	var tokenString string

	// 优先从 Cookie 获取
	if cookie, err := c.Cookie("cine_token"); err == nil {
		tokenString = cookie
	} else {
		// 从 Authorization Header 获取
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if tokenString == "" {
		return nil, repository.ErrInvalidToken
	}

	return sessions.VerifyToken(tokenString)
}

// GetUserID 从上下文获取用户 ID（未登录返回空串）
func GetUserID(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		return userID.(string)
	}
	return ""
}
