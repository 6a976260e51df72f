// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"github.com/JamalC77/penned-works/internal/domain/entity"
)

// StoryBibleRepository 故事圣经仓储接口
//
// 覆盖角色、关系、地点、物品、世界规则、情节线、时间线与一致性标记。
type StoryBibleRepository interface {
	// CreateCharacter 创建角色
	CreateCharacter(ctx context.Context, character *entity.Character) error

	// GetCharacter 根据 ID 获取角色
	GetCharacter(ctx context.Context, id string) (*entity.Character, error)

	// ListCharacters 获取项目角色列表
	ListCharacters(ctx context.Context, projectID string) ([]*entity.Character, error)

	// UpdateCharacter 更新角色
	UpdateCharacter(ctx context.Context, character *entity.Character) error

	// DeleteCharacter 删除角色
	DeleteCharacter(ctx context.Context, id string) error

	// CreateRelationship 创建角色关系
	CreateRelationship(ctx context.Context, rel *entity.CharacterRelationship) error

	// ListRelationships 获取项目角色关系列表
	ListRelationships(ctx context.Context, projectID string) ([]*entity.CharacterRelationship, error)

	// CreateLocation 创建地点
	CreateLocation(ctx context.Context, location *entity.Location) error

	// ListLocations 获取项目地点列表
	ListLocations(ctx context.Context, projectID string) ([]*entity.Location, error)

	// CreateItem 创建物品
	CreateItem(ctx context.Context, item *entity.StoryItem) error

	// ListItems 获取项目物品列表
	ListItems(ctx context.Context, projectID string) ([]*entity.StoryItem, error)

	// CreateWorldRule 创建世界规则
	CreateWorldRule(ctx context.Context, rule *entity.WorldRule) error

	// ListWorldRules 获取项目世界规则列表
	ListWorldRules(ctx context.Context, projectID string) ([]*entity.WorldRule, error)

	// CreatePlotThread 创建情节线
	CreatePlotThread(ctx context.Context, thread *entity.PlotThread) error

	// ListPlotThreads 获取项目情节线列表
	ListPlotThreads(ctx context.Context, projectID string) ([]*entity.PlotThread, error)

	// CreateTimelineEvent 创建时间线事件
	CreateTimelineEvent(ctx context.Context, event *entity.TimelineEvent) error

	// ListTimelineEvents 获取项目时间线事件列表，按 sort_order 升序
	ListTimelineEvents(ctx context.Context, projectID string) ([]*entity.TimelineEvent, error)

	// CountTimelineEvents 统计项目时间线事件数
	CountTimelineEvents(ctx context.Context, projectID string) (int64, error)

	// CreateFlag 创建一致性标记
	CreateFlag(ctx context.Context, flag *entity.ConsistencyFlag) error

	// ListFlags 获取项目一致性标记列表
	ListFlags(ctx context.Context, projectID string) ([]*entity.ConsistencyFlag, error)
}
