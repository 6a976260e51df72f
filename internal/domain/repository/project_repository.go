// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"github.com/JamalC77/penned-works/internal/domain/entity"
)

// ProjectRepository 项目仓储接口
type ProjectRepository interface {
	// Create 创建项目
	Create(ctx context.Context, project *entity.Project) error

	// GetByID 根据 ID 获取项目
	GetByID(ctx context.Context, id string) (*entity.Project, error)

	// GetWithChapters 获取项目及其章节，章节按 sort_order 升序
	GetWithChapters(ctx context.Context, id string) (*entity.Project, error)

	// ListByUser 获取用户的项目列表，按更新时间倒序
	ListByUser(ctx context.Context, userID string) ([]*entity.Project, error)

	// Update 更新项目
	Update(ctx context.Context, project *entity.Project) error

	// Touch 刷新项目更新时间
	Touch(ctx context.Context, id string, at time.Time) error

	// Delete 删除项目及其级联数据
	Delete(ctx context.Context, id string) error
}
