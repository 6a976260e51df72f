// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"github.com/JamalC77/penned-works/internal/domain/entity"
)

// ChapterRepository 章节仓储接口
type ChapterRepository interface {
	// Create 创建章节
	Create(ctx context.Context, chapter *entity.Chapter) error

	// GetByID 根据 ID 获取章节
	GetByID(ctx context.Context, id string) (*entity.Chapter, error)

	// ListByProject 获取项目章节列表，按 sort_order 升序
	ListByProject(ctx context.Context, projectID string) ([]*entity.Chapter, error)

	// CountByProject 统计项目章节数
	CountByProject(ctx context.Context, projectID string) (int64, error)

	// MaxOrder 获取项目内最大排序值，无章节时返回 -1
	MaxOrder(ctx context.Context, projectID string) (int, error)

	// Update 更新章节
	Update(ctx context.Context, chapter *entity.Chapter) error

	// UpdateOrder 更新单个章节的排序值
	UpdateOrder(ctx context.Context, id string, order int) error

	// Delete 删除章节及其级联版本
	Delete(ctx context.Context, id string) error
}
