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

// ProjectHandler 项目处理器
type ProjectHandler struct {
	service *manuscript.Service
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(service *manuscript.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// ListProjects 获取项目列表
// @Summary 获取项目列表
// @Description 获取当前用户的项目，按更新时间倒序
// @Tags Projects
// @Produce json
// @Success 200 {object} dto.Response[[]entity.Project]
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	projects, err := h.service.ListProjects(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to list projects", err)
		dto.InternalError(c, "failed to list projects")
		return
	}
	dto.Success(c, projects)
}

// CreateProject 创建项目
// @Summary 创建项目
// @Description 创建新项目并附带第一章
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body dto.CreateProjectRequest true "项目信息"
// @Success 201 {object} dto.Response[dto.CreateProjectResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.service.CreateProject(ctx, userID, req.Title, req.Description)
	if err != nil {
		logger.Error(ctx, "failed to create project", err)
		dto.InternalError(c, "failed to create project")
		return
	}

	dto.Created(c, &dto.CreateProjectResponse{
		Project:        result.Project,
		FirstChapterID: result.FirstChapterID,
	})
}

// GetProject 获取项目详情
// @Summary 获取项目详情
// @Description 获取项目及其章节列表
// @Tags Projects
// @Produce json
// @Param projectId path string true "项目 ID"
// @Success 200 {object} dto.Response[entity.Project]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/projects/{projectId} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	projectID := c.Param("projectId")

	project, err := h.service.GetProject(ctx, userID, projectID)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to get project", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, project)
}

// UpdateProject 更新项目
// @Summary 更新项目
// @Description 更新项目标题与描述
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectId path string true "项目 ID"
// @Param body body dto.UpdateProjectRequest true "更新内容"
// @Success 200 {object} dto.Response[entity.Project]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/projects/{projectId} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	projectID := c.Param("projectId")

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	project, err := h.service.UpdateProject(ctx, userID, projectID, manuscript.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to update project", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, project)
}

// DeleteProject 删除项目
// @Summary 删除项目
// @Description 删除项目及其全部章节与故事圣经
// @Tags Projects
// @Produce json
// @Param projectId path string true "项目 ID"
// @Success 200 {object} dto.Response[gin.H]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/projects/{projectId} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	projectID := c.Param("projectId")

	if err := h.service.DeleteProject(ctx, userID, projectID); err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to delete project", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, gin.H{"success": true})
}
