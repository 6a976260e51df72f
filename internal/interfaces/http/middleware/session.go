// Package middleware 提供 HTTP 中间件
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JamalC77/penned-works/pkg/logger"
	"github.com/JamalC77/penned-works/pkg/utils"
)

// SessionConfig 会话认证配置
type SessionConfig struct {
	// Secret 会话 Token 签名密钥
	Secret string
	// Issuer Token 签发者
	Issuer string
	// CookieName 会话 Cookie 名
	CookieName string
}

// Session 会话认证中间件，从 Cookie 解析会话 Token
//
// 缺失或无效的会话统一 401，处理器经由 UserID/Username 读取身份。
func Session(cfg SessionConfig) gin.HandlerFunc {
	jwtManager := utils.NewJWTManager(cfg.Secret, cfg.Issuer)

	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			abortUnauthorized(c, "not authenticated")
			return
		}

		claims, err := jwtManager.ParseSessionToken(token)
		if err != nil {
			msg := "invalid session"
			if err == utils.ErrExpiredToken {
				msg = "session expired"
			}
			abortUnauthorized(c, msg)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)

		ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ResolveSession 尽力解析会话但从不中断请求，供 /auth/check 使用
func ResolveSession(cfg SessionConfig) gin.HandlerFunc {
	jwtManager := utils.NewJWTManager(cfg.Secret, cfg.Issuer)

	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err == nil && token != "" {
			if claims, err := jwtManager.ParseSessionToken(token); err == nil {
				c.Set("user_id", claims.UserID)
				c.Set("username", claims.Username)
			}
		}
		c.Next()
	}
}

// UserID 从 Gin Context 读取当前用户 ID
func UserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// Username 从 Gin Context 读取当前用户名
func Username(c *gin.Context) string {
	return c.GetString("username")
}

// abortUnauthorized 返回 401 并中断请求
func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": message,
	})
}
