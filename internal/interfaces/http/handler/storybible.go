// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/JamalC77/penned-works/internal/application/storybible"
	"github.com/JamalC77/penned-works/internal/interfaces/http/dto"
	"github.com/JamalC77/penned-works/internal/interfaces/http/middleware"
	apperrors "github.com/JamalC77/penned-works/pkg/errors"
	"github.com/JamalC77/penned-works/pkg/logger"
)

// StoryBibleHandler 故事圣经处理器
type StoryBibleHandler struct {
	service *storybible.Service
}

// NewStoryBibleHandler 创建故事圣经处理器
func NewStoryBibleHandler(service *storybible.Service) *StoryBibleHandler {
	return &StoryBibleHandler{service: service}
}

// GetBible 获取故事圣经
// @Summary 获取项目故事圣经
// @Description 返回项目的全部角色、地点、物品、时间线、情节线、世界规则、关系与一致性标记
// @Tags StoryBible
// @Produce json
// @Param projectId path string true "项目 ID"
// @Success 200 {object} dto.Response[storybible.Bible]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/storybible/{projectId} [get]
func (h *StoryBibleHandler) GetBible(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	projectID := c.Param("projectId")

	bible, err := h.service.GetBible(ctx, userID, projectID)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to fetch story bible", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, bible)
}

// Extract 执行抽取
// @Summary 抽取故事圣经
// @Description 逐章抽取实体并合并进故事圣经，返回各类别新增条数
// @Tags StoryBible
// @Produce json
// @Param projectId path string true "项目 ID"
// @Success 200 {object} dto.Response[dto.ExtractResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/storybible/{projectId}/extract [post]
func (h *StoryBibleHandler) Extract(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	projectID := c.Param("projectId")

	counts, err := h.service.Extract(ctx, userID, projectID)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "story bible extraction failed", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, &dto.ExtractResponse{Extracted: counts})
}

// CheckConsistency 执行一致性检查
// @Summary 一致性检查
// @Description 对全稿执行一致性检查并落库新发现的问题
// @Tags StoryBible
// @Produce json
// @Param projectId path string true "项目 ID"
// @Success 200 {object} dto.Response[[]entity.ConsistencyFlag]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/storybible/{projectId}/consistency [post]
func (h *StoryBibleHandler) CheckConsistency(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	projectID := c.Param("projectId")

	flags, err := h.service.CheckConsistency(ctx, userID, projectID)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "consistency check failed", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, flags)
}

// CreateCharacter 手动创建角色
// @Summary 创建角色
// @Description 手动向故事圣经添加角色
// @Tags StoryBible
// @Accept json
// @Produce json
// @Param body body dto.CreateCharacterRequest true "角色信息"
// @Success 201 {object} dto.Response[entity.Character]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/storybible/characters [post]
func (h *StoryBibleHandler) CreateCharacter(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	var req dto.CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	character, err := h.service.CreateCharacter(ctx, userID, storybible.CreateCharacterInput{
		ProjectID:           req.ProjectID,
		Name:                req.Name,
		Aliases:             req.Aliases,
		PhysicalDescription: req.PhysicalDescription,
		Age:                 req.Age,
		Personality:         req.Personality,
		Backstory:           req.Backstory,
		Notes:               req.Notes,
		FirstAppearance:     req.FirstAppearance,
		IsMainCharacter:     req.IsMainCharacter,
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to create character", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Created(c, character)
}

// GetCharacter 获取角色
// @Summary 获取角色
// @Tags StoryBible
// @Produce json
// @Param characterId path string true "角色 ID"
// @Success 200 {object} dto.Response[entity.Character]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/storybible/characters/{characterId} [get]
func (h *StoryBibleHandler) GetCharacter(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	characterID := c.Param("characterId")

	character, err := h.service.GetCharacter(ctx, userID, characterID)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to get character", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, character)
}

// UpdateCharacter 更新角色
// @Summary 更新角色
// @Tags StoryBible
// @Accept json
// @Produce json
// @Param characterId path string true "角色 ID"
// @Param body body dto.UpdateCharacterRequest true "更新内容"
// @Success 200 {object} dto.Response[entity.Character]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/storybible/characters/{characterId} [patch]
func (h *StoryBibleHandler) UpdateCharacter(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	characterID := c.Param("characterId")

	var req dto.UpdateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	character, err := h.service.UpdateCharacter(ctx, userID, characterID, storybible.UpdateCharacterInput{
		Name:                req.Name,
		Aliases:             req.Aliases,
		PhysicalDescription: req.PhysicalDescription,
		Age:                 req.Age,
		Personality:         req.Personality,
		Backstory:           req.Backstory,
		Notes:               req.Notes,
		FirstAppearance:     req.FirstAppearance,
		IsMainCharacter:     req.IsMainCharacter,
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to update character", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, character)
}

// DeleteCharacter 删除角色
// @Summary 删除角色
// @Tags StoryBible
// @Produce json
// @Param characterId path string true "角色 ID"
// @Success 200 {object} dto.Response[gin.H]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/storybible/characters/{characterId} [delete]
func (h *StoryBibleHandler) DeleteCharacter(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	characterID := c.Param("characterId")

	if err := h.service.DeleteCharacter(ctx, userID, characterID); err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to delete character", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, gin.H{"success": true})
}
