// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chapter 章节实体
//
// Order 为项目内从 0 开始的稠密序号，删除兄弟章节后重新压实。
type Chapter struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	ProjectID string    `json:"project_id" gorm:"index;not null;type:text"`
	Title     string    `json:"title" gorm:"not null;type:text"`
	Content   string    `json:"content" gorm:"type:text;default:''"`
	Order     int       `json:"order" gorm:"column:sort_order;not null"`
	WordCount int       `json:"word_count" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Versions []Version `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (Chapter) TableName() string {
	return "chapters"
}

// NewChapter 创建新章节
func NewChapter(projectID, title string, order int) *Chapter {
	now := time.Now()
	return &Chapter{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Title:     title,
		Content:   "",
		Order:     order,
		WordCount: 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
