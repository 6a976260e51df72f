// Package database 提供 Repository 实现
package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/JamalC77/penned-works/internal/domain/entity"
)

// ChapterRepository 章节仓储实现
type ChapterRepository struct {
	client *Client
}

// NewChapterRepository 创建章节仓储
func NewChapterRepository(client *Client) *ChapterRepository {
	return &ChapterRepository{client: client}
}

// Create 创建章节
func (r *ChapterRepository) Create(ctx context.Context, chapter *entity.Chapter) error {
	ctx, span := tracer.Start(ctx, "database.ChapterRepository.Create")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Create(chapter).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create chapter: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取章节
func (r *ChapterRepository) GetByID(ctx context.Context, id string) (*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "database.ChapterRepository.GetByID")
	defer span.End()

	var chapter entity.Chapter
	err := dbFromContext(ctx, r.client.db).First(&chapter, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return &chapter, nil
}

// ListByProject 获取项目章节列表，按 sort_order 升序
func (r *ChapterRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "database.ChapterRepository.ListByProject")
	defer span.End()

	var chapters []*entity.Chapter
	err := dbFromContext(ctx, r.client.db).
		Where("project_id = ?", projectID).
		Order("sort_order ASC").
		Find(&chapters).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return chapters, nil
}

// CountByProject 统计项目章节数
func (r *ChapterRepository) CountByProject(ctx context.Context, projectID string) (int64, error) {
	ctx, span := tracer.Start(ctx, "database.ChapterRepository.CountByProject")
	defer span.End()

	var count int64
	err := dbFromContext(ctx, r.client.db).
		Model(&entity.Chapter{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count chapters: %w", err)
	}
	return count, nil
}

// MaxOrder 获取项目内最大排序值，无章节时返回 -1
func (r *ChapterRepository) MaxOrder(ctx context.Context, projectID string) (int, error) {
	ctx, span := tracer.Start(ctx, "database.ChapterRepository.MaxOrder")
	defer span.End()

	var max *int
	err := dbFromContext(ctx, r.client.db).
		Model(&entity.Chapter{}).
		Where("project_id = ?", projectID).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to get max chapter order: %w", err)
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// Update 更新章节
func (r *ChapterRepository) Update(ctx context.Context, chapter *entity.Chapter) error {
	ctx, span := tracer.Start(ctx, "database.ChapterRepository.Update")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Save(chapter).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update chapter: %w", err)
	}
	return nil
}

// UpdateOrder 更新单个章节的排序值
func (r *ChapterRepository) UpdateOrder(ctx context.Context, id string, order int) error {
	ctx, span := tracer.Start(ctx, "database.ChapterRepository.UpdateOrder")
	defer span.End()

	err := dbFromContext(ctx, r.client.db).
		Model(&entity.Chapter{}).
		Where("id = ?", id).
		Update("sort_order", order).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update chapter order: %w", err)
	}
	return nil
}

// Delete 删除章节及其级联版本
func (r *ChapterRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "database.ChapterRepository.Delete")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Delete(&entity.Chapter{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	return nil
}
