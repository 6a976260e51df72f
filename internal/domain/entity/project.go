// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Project 写作项目实体（一本书、一部小说、一个合集）
type Project struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	UserID      string    `json:"user_id" gorm:"index;not null;type:text"`
	Title       string    `json:"title" gorm:"not null;type:text"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Chapters []Chapter `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}

// NewProject 创建新项目
func NewProject(userID, title, description string) *Project {
	now := time.Now()
	return &Project{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
