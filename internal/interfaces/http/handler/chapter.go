// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/JamalC77/penned-works/internal/application/manuscript"
	"github.com/JamalC77/penned-works/internal/interfaces/http/dto"
	"github.com/JamalC77/penned-works/internal/interfaces/http/middleware"
	apperrors "github.com/JamalC77/penned-works/pkg/errors"
	"github.com/JamalC77/penned-works/pkg/logger"
)

// ChapterHandler 章节处理器
type ChapterHandler struct {
	service *manuscript.Service
}

// NewChapterHandler 创建章节处理器
func NewChapterHandler(service *manuscript.Service) *ChapterHandler {
	return &ChapterHandler{service: service}
}

// CreateChapter 创建章节
// @Summary 创建章节
// @Description 创建章节，标题缺省为 Chapter N，排序接在末尾
// @Tags Chapters
// @Accept json
// @Produce json
// @Param body body dto.CreateChapterRequest true "章节信息"
// @Success 201 {object} dto.Response[entity.Chapter]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chapters [post]
func (h *ChapterHandler) CreateChapter(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chapter, err := h.service.CreateChapter(ctx, userID, req.ProjectID, req.Title)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to create chapter", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Created(c, chapter)
}

// GetChapter 获取章节
// @Summary 获取章节
// @Description 获取单个章节内容
// @Tags Chapters
// @Produce json
// @Param chapterId path string true "章节 ID"
// @Success 200 {object} dto.Response[entity.Chapter]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chapters/{chapterId} [get]
func (h *ChapterHandler) GetChapter(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	chapterID := c.Param("chapterId")

	chapter, err := h.service.GetChapter(ctx, userID, chapterID)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to get chapter", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, chapter)
}

// UpdateChapter 更新章节
// @Summary 更新章节
// @Description 自动保存入口；create_version 置位时先快照更新前内容
// @Tags Chapters
// @Accept json
// @Produce json
// @Param chapterId path string true "章节 ID"
// @Param body body dto.UpdateChapterRequest true "更新内容"
// @Success 200 {object} dto.Response[entity.Chapter]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chapters/{chapterId} [patch]
func (h *ChapterHandler) UpdateChapter(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	chapterID := c.Param("chapterId")

	var req dto.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chapter, err := h.service.UpdateChapter(ctx, userID, chapterID, manuscript.UpdateChapterInput{
		Title:         req.Title,
		Content:       req.Content,
		CreateVersion: req.CreateVersion,
		VersionLabel:  req.VersionLabel,
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to update chapter", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, chapter)
}

// DeleteChapter 删除章节
// @Summary 删除章节
// @Description 删除章节并压实剩余章节排序
// @Tags Chapters
// @Produce json
// @Param chapterId path string true "章节 ID"
// @Success 200 {object} dto.Response[gin.H]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chapters/{chapterId} [delete]
func (h *ChapterHandler) DeleteChapter(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	chapterID := c.Param("chapterId")

	if err := h.service.DeleteChapter(ctx, userID, chapterID); err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to delete chapter", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, gin.H{"success": true})
}

// ListVersions 获取版本列表
// @Summary 获取章节版本列表
// @Description 按创建时间倒序返回章节版本快照
// @Tags Chapters
// @Produce json
// @Param chapterId path string true "章节 ID"
// @Success 200 {object} dto.Response[[]entity.Version]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chapters/{chapterId}/versions [get]
func (h *ChapterHandler) ListVersions(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	chapterID := c.Param("chapterId")

	versions, err := h.service.ListVersions(ctx, userID, chapterID)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to list versions", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, versions)
}
