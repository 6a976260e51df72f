// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// StoryItem 故事圣经中的重要物品实体
type StoryItem struct {
	ID               string    `json:"id" gorm:"primaryKey;type:text"`
	ProjectID        string    `json:"project_id" gorm:"index;not null;type:text"`
	Name             string    `json:"name" gorm:"not null;type:text"`
	Description      string    `json:"description,omitempty" gorm:"type:text"`
	Significance     string    `json:"significance,omitempty" gorm:"type:text"`
	CurrentPossessor string    `json:"current_possessor,omitempty" gorm:"type:text"`
	FirstAppearance  string    `json:"first_appearance,omitempty" gorm:"type:text"`
	Notes            string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (StoryItem) TableName() string {
	return "story_items"
}

// NewStoryItem 创建物品
func NewStoryItem(projectID, name string) *StoryItem {
	now := time.Now()
	return &StoryItem{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
