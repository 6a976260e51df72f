// Package database 提供 Repository 实现
package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/JamalC77/penned-works/internal/domain/entity"
)

// VersionRepository 章节版本仓储实现
type VersionRepository struct {
	client *Client
}

// NewVersionRepository 创建版本仓储
func NewVersionRepository(client *Client) *VersionRepository {
	return &VersionRepository{client: client}
}

// Create 创建版本快照
func (r *VersionRepository) Create(ctx context.Context, version *entity.Version) error {
	ctx, span := tracer.Start(ctx, "database.VersionRepository.Create")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Create(version).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create version: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取版本
func (r *VersionRepository) GetByID(ctx context.Context, id string) (*entity.Version, error) {
	ctx, span := tracer.Start(ctx, "database.VersionRepository.GetByID")
	defer span.End()

	var version entity.Version
	err := dbFromContext(ctx, r.client.db).First(&version, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get version: %w", err)
	}
	return &version, nil
}

// ListByChapter 获取章节版本列表，按创建时间倒序
func (r *VersionRepository) ListByChapter(ctx context.Context, chapterID string) ([]*entity.Version, error) {
	ctx, span := tracer.Start(ctx, "database.VersionRepository.ListByChapter")
	defer span.End()

	var versions []*entity.Version
	err := dbFromContext(ctx, r.client.db).
		Where("chapter_id = ?", chapterID).
		Order("created_at DESC").
		Find(&versions).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	return versions, nil
}
