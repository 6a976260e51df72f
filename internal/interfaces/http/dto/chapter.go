// Package dto 提供 HTTP 层数据传输对象
package dto

// CreateChapterRequest 创建章节请求，标题为空时自动生成
type CreateChapterRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	Title     string `json:"title"`
}

// UpdateChapterRequest 章节更新请求，自动保存与显式存版本共用
type UpdateChapterRequest struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	CreateVersion bool    `json:"create_version"`
	VersionLabel  string  `json:"version_label"`
}
