// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimelineEvent 时间线事件实体
//
// Order 在抽取时只追加递增，不做压实。
type TimelineEvent struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	ProjectID   string    `json:"project_id" gorm:"index;not null;type:text"`
	Title       string    `json:"title" gorm:"not null;type:text"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	StoryDate   string    `json:"story_date,omitempty" gorm:"type:text"`
	Duration    string    `json:"duration,omitempty" gorm:"type:text"`
	ChapterID   string    `json:"chapter_id,omitempty" gorm:"type:text"`
	Order       int       `json:"order" gorm:"column:sort_order;not null"`
	Notes       string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (TimelineEvent) TableName() string {
	return "timeline_events"
}

// NewTimelineEvent 创建时间线事件
func NewTimelineEvent(projectID, title string, order int) *TimelineEvent {
	now := time.Now()
	return &TimelineEvent{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Title:     title,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
