// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/JamalC77/penned-works/internal/application/auth"
	"github.com/JamalC77/penned-works/internal/config"
	"github.com/JamalC77/penned-works/internal/domain/entity"
	"github.com/JamalC77/penned-works/internal/interfaces/http/dto"
	"github.com/JamalC77/penned-works/internal/interfaces/http/middleware"
	apperrors "github.com/JamalC77/penned-works/pkg/errors"
	"github.com/JamalC77/penned-works/pkg/logger"
	"github.com/JamalC77/penned-works/pkg/utils"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *auth.Service
	jwtManager  *utils.JWTManager
	cfg         config.SessionConfig
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *auth.Service, cfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtManager:  utils.NewJWTManager(cfg.Secret, cfg.Issuer),
		cfg:         cfg,
	}
}

// Register 注册
// @Summary 用户注册
// @Description 创建新用户并自动登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.Response[dto.AuthResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.authService.Register(ctx, req.Username, req.Password)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "registration failed", err)
		}
		dto.FromError(c, err)
		return
	}

	if err := h.setSessionCookie(c, user); err != nil {
		logger.Error(ctx, "failed to issue session", err)
		dto.InternalError(c, "user created but failed to start session")
		return
	}

	dto.Created(c, &dto.AuthResponse{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	})
}

// Login 登录
// @Summary 用户登录
// @Description 校验凭证并签发会话 Cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.Response[dto.AuthResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		dto.FromError(c, err)
		return
	}

	if err := h.setSessionCookie(c, user); err != nil {
		logger.Error(ctx, "failed to issue session", err)
		dto.InternalError(c, "login failed")
		return
	}

	dto.Success(c, &dto.AuthResponse{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	})
}

// Logout 登出
// @Summary 用户登出
// @Description 清除会话 Cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.Response[gin.H]
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.Secure, true)
	dto.Success(c, gin.H{"success": true})
}

// Check 会话状态
// @Summary 会话状态查询
// @Description 返回当前会话状态，从不报错
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.SessionCheckResponse
// @Router /api/auth/check [get]
func (h *AuthHandler) Check(c *gin.Context) {
	username := middleware.Username(c)
	c.JSON(200, dto.SessionCheckResponse{
		Authenticated: username != "",
		Username:      username,
	})
}

// setSessionCookie 签发会话 Token 并写入 Cookie
func (h *AuthHandler) setSessionCookie(c *gin.Context, user *entity.User) error {
	token, err := h.jwtManager.GenerateSessionToken(user.ID, user.Username, h.cfg.TTL)
	if err != nil {
		return err
	}
	c.SetCookie(h.cfg.CookieName, token, int(h.cfg.TTL.Seconds()), "/", "", h.cfg.Secure, true)
	return nil
}
