// Package database 提供 Repository 实现
package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/JamalC77/penned-works/internal/domain/entity"
)

// StoryBibleRepository 故事圣经仓储实现
type StoryBibleRepository struct {
	client *Client
}

// NewStoryBibleRepository 创建故事圣经仓储
func NewStoryBibleRepository(client *Client) *StoryBibleRepository {
	return &StoryBibleRepository{client: client}
}

// CreateCharacter 创建角色
func (r *StoryBibleRepository) CreateCharacter(ctx context.Context, character *entity.Character) error {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.CreateCharacter")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Create(character).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create character: %w", err)
	}
	return nil
}

// GetCharacter 根据 ID 获取角色
func (r *StoryBibleRepository) GetCharacter(ctx context.Context, id string) (*entity.Character, error) {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.GetCharacter")
	defer span.End()

	var character entity.Character
	err := dbFromContext(ctx, r.client.db).First(&character, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &character, nil
}

// ListCharacters 获取项目角色列表
func (r *StoryBibleRepository) ListCharacters(ctx context.Context, projectID string) ([]*entity.Character, error) {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.ListCharacters")
	defer span.End()

	var characters []*entity.Character
	err := dbFromContext(ctx, r.client.db).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&characters).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

// UpdateCharacter 更新角色
func (r *StoryBibleRepository) UpdateCharacter(ctx context.Context, character *entity.Character) error {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.UpdateCharacter")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Save(character).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update character: %w", err)
	}
	return nil
}

// DeleteCharacter 删除角色
func (r *StoryBibleRepository) DeleteCharacter(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.DeleteCharacter")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Delete(&entity.Character{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

// CreateRelationship 创建角色关系
func (r *StoryBibleRepository) CreateRelationship(ctx context.Context, rel *entity.CharacterRelationship) error {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.CreateRelationship")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Create(rel).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create relationship: %w", err)
	}
	return nil
}

// ListRelationships 获取项目角色关系列表
func (r *StoryBibleRepository) ListRelationships(ctx context.Context, projectID string) ([]*entity.CharacterRelationship, error) {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.ListRelationships")
	defer span.End()

	var rels []*entity.CharacterRelationship
	err := dbFromContext(ctx, r.client.db).
		Where("project_id = ?", projectID).
		Find(&rels).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	return rels, nil
}

// CreateLocation 创建地点
func (r *StoryBibleRepository) CreateLocation(ctx context.Context, location *entity.Location) error {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.CreateLocation")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Create(location).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

// ListLocations 获取项目地点列表
func (r *StoryBibleRepository) ListLocations(ctx context.Context, projectID string) ([]*entity.Location, error) {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.ListLocations")
	defer span.End()

	var locations []*entity.Location
	err := dbFromContext(ctx, r.client.db).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&locations).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// CreateItem 创建物品
func (r *StoryBibleRepository) CreateItem(ctx context.Context, item *entity.StoryItem) error {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.CreateItem")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Create(item).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// ListItems 获取项目物品列表
func (r *StoryBibleRepository) ListItems(ctx context.Context, projectID string) ([]*entity.StoryItem, error) {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.ListItems")
	defer span.End()

	var items []*entity.StoryItem
	err := dbFromContext(ctx, r.client.db).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// CreateWorldRule 创建世界规则
func (r *StoryBibleRepository) CreateWorldRule(ctx context.Context, rule *entity.WorldRule) error {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.CreateWorldRule")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Create(rule).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create world rule: %w", err)
	}
	return nil
}

// ListWorldRules 获取项目世界规则列表
func (r *StoryBibleRepository) ListWorldRules(ctx context.Context, projectID string) ([]*entity.WorldRule, error) {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.ListWorldRules")
	defer span.End()

	var rules []*entity.WorldRule
	err := dbFromContext(ctx, r.client.db).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&rules).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list world rules: %w", err)
	}
	return rules, nil
}

// CreatePlotThread 创建情节线
func (r *StoryBibleRepository) CreatePlotThread(ctx context.Context, thread *entity.PlotThread) error {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.CreatePlotThread")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Create(thread).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create plot thread: %w", err)
	}
	return nil
}

// ListPlotThreads 获取项目情节线列表
func (r *StoryBibleRepository) ListPlotThreads(ctx context.Context, projectID string) ([]*entity.PlotThread, error) {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.ListPlotThreads")
	defer span.End()

	var threads []*entity.PlotThread
	err := dbFromContext(ctx, r.client.db).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&threads).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list plot threads: %w", err)
	}
	return threads, nil
}

// CreateTimelineEvent 创建时间线事件
func (r *StoryBibleRepository) CreateTimelineEvent(ctx context.Context, event *entity.TimelineEvent) error {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.CreateTimelineEvent")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Create(event).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create timeline event: %w", err)
	}
	return nil
}

// ListTimelineEvents 获取项目时间线事件列表，按 sort_order 升序
func (r *StoryBibleRepository) ListTimelineEvents(ctx context.Context, projectID string) ([]*entity.TimelineEvent, error) {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.ListTimelineEvents")
	defer span.End()

	var events []*entity.TimelineEvent
	err := dbFromContext(ctx, r.client.db).
		Where("project_id = ?", projectID).
		Order("sort_order ASC").
		Find(&events).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list timeline events: %w", err)
	}
	return events, nil
}

// CountTimelineEvents 统计项目时间线事件数
func (r *StoryBibleRepository) CountTimelineEvents(ctx context.Context, projectID string) (int64, error) {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.CountTimelineEvents")
	defer span.End()

	var count int64
	err := dbFromContext(ctx, r.client.db).
		Model(&entity.TimelineEvent{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count timeline events: %w", err)
	}
	return count, nil
}

// CreateFlag 创建一致性标记
func (r *StoryBibleRepository) CreateFlag(ctx context.Context, flag *entity.ConsistencyFlag) error {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.CreateFlag")
	defer span.End()

	if err := dbFromContext(ctx, r.client.db).Create(flag).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create consistency flag: %w", err)
	}
	return nil
}

// ListFlags 获取项目一致性标记列表
func (r *StoryBibleRepository) ListFlags(ctx context.Context, projectID string) ([]*entity.ConsistencyFlag, error) {
	ctx, span := tracer.Start(ctx, "database.StoryBibleRepository.ListFlags")
	defer span.End()

	var flags []*entity.ConsistencyFlag
	err := dbFromContext(ctx, r.client.db).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&flags).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list consistency flags: %w", err)
	}
	return flags, nil
}
