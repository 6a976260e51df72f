// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Version 章节内容的不可变快照
//
// 仅在保存请求显式携带 createVersion 标记时创建（例如恢复历史版本前），
// 创建后不再修改，只随章节级联删除。
type Version struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	ChapterID string    `json:"chapter_id" gorm:"index;not null;type:text"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	WordCount int       `json:"word_count" gorm:"default:0"`
	Label     string    `json:"label,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Version) TableName() string {
	return "versions"
}

// NewVersion 由章节当前内容创建快照
func NewVersion(chapterID, content string, wordCount int, label string) *Version {
	return &Version{
		ID:        uuid.NewString(),
		ChapterID: chapterID,
		Content:   content,
		WordCount: wordCount,
		Label:     label,
		CreatedAt: time.Now(),
	}
}
