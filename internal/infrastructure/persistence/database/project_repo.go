// Package database 提供 Repository 实现
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/JamalC77/penned-works/internal/domain/entity"
)

// ProjectRepository 项目仓储实现
type ProjectRepository struct {
	client *Client
}

// NewProjectRepository 创建项目仓储
func NewProjectRepository(client *Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// Create 创建项目
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	ctx, span := tracer.Start(ctx, "database.ProjectRepository.Create")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Create(project).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取项目
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "database.ProjectRepository.GetByID")
	defer span.End()

	var project entity.Project
	err := dbFromContext(ctx, r.client.db).First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// GetWithChapters 获取项目及其章节
func (r *ProjectRepository) GetWithChapters(ctx context.Context, id string) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "database.ProjectRepository.GetWithChapters")
	defer span.End()

	var project entity.Project
	err := dbFromContext(ctx, r.client.db).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get project with chapters: %w", err)
	}
	return &project, nil
}

// ListByUser 获取用户的项目列表，按更新时间倒序
func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "database.ProjectRepository.ListByUser")
	defer span.End()

	var projects []*entity.Project
	err := dbFromContext(ctx, r.client.db).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&projects).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Update 更新项目
func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	ctx, span := tracer.Start(ctx, "database.ProjectRepository.Update")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Save(project).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// Touch 刷新项目更新时间
func (r *ProjectRepository) Touch(ctx context.Context, id string, at time.Time) error {
	ctx, span := tracer.Start(ctx, "database.ProjectRepository.Touch")
	defer span.End()

	err := dbFromContext(ctx, r.client.db).
		Model(&entity.Project{}).
		Where("id = ?", id).
		Update("updated_at", at).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to touch project: %w", err)
	}
	return nil
}

// Delete 删除项目及其级联数据
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "database.ProjectRepository.Delete")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Delete(&entity.Project{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
