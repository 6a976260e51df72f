package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WorldRule 世界观规则实体
type WorldRule struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	ProjectID   string    `json:"project_id" gorm:"index;not null;type:text"`
	Category    string    `json:"category" gorm:"not null;type:text"`
	Name        string    `json:"name" gorm:"not null;type:text"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Limitations string    `json:"limitations,omitempty" gorm:"type:text"`
	Notes       string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (WorldRule) TableName() string {
	return "world_rules"
}

// NewWorldRule 创建世界观规则
func NewWorldRule(projectID, category, name string) *WorldRule {
	now := time.Now()
	return &WorldRule{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Category:  category,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NameEquals 大小写不敏感的名字匹配
func (w *WorldRule) NameEquals(name string) bool {
	return strings.EqualFold(w.Name, name)
}
