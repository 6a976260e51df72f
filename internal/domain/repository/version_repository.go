// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"github.com/JamalC77/penned-works/internal/domain/entity"
)

// VersionRepository 章节版本仓储接口
type VersionRepository interface {
	// Create 创建版本快照
	Create(ctx context.Context, version *entity.Version) error

	// GetByID 根据 ID 获取版本
	GetByID(ctx context.Context, id string) (*entity.Version, error)

	// ListByChapter 获取章节版本列表，按创建时间倒序
	ListByChapter(ctx context.Context, chapterID string) ([]*entity.Version, error)
}
