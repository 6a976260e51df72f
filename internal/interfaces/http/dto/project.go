// Package dto 提供 HTTP 层数据传输对象
package dto

import "github.com/JamalC77/penned-works/internal/domain/entity"

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// UpdateProjectRequest 更新项目请求，nil 字段表示不修改
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// CreateProjectResponse 创建项目响应，附带首章 ID 供前端直接打开编辑器
type CreateProjectResponse struct {
	Project        *entity.Project `json:"project"`
	FirstChapterID string          `json:"first_chapter_id"`
}
