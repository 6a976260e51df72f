// Package entity 定义领域实体
package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Character 故事圣经中的角色实体
//
// 去重标识是大小写不敏感的名字而非稳定外部键，
// 昵称、"Sarah" 与 "Sarah Chen" 之类的近似名不会被合并。
type Character struct {
	ID                  string    `json:"id" gorm:"primaryKey;type:text"`
	ProjectID           string    `json:"project_id" gorm:"index;not null;type:text"`
	Name                string    `json:"name" gorm:"not null;type:text"`
	Aliases             string    `json:"aliases,omitempty" gorm:"type:text"`
	PhysicalDescription string    `json:"physical_description,omitempty" gorm:"type:text"`
	Age                 string    `json:"age,omitempty" gorm:"type:text"`
	Personality         string    `json:"personality,omitempty" gorm:"type:text"`
	Backstory           string    `json:"backstory,omitempty" gorm:"type:text"`
	Notes               string    `json:"notes,omitempty" gorm:"type:text"`
	FirstAppearance     string    `json:"first_appearance,omitempty" gorm:"type:text"`
	IsMainCharacter     bool      `json:"is_main_character" gorm:"default:false"`
	CreatedAt           time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Character) TableName() string {
	return "characters"
}

// NewCharacter 创建角色
func NewCharacter(projectID, name string) *Character {
	now := time.Now()
	return &Character{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetAliases 以 JSON 数组存储别名列表
func (c *Character) SetAliases(aliases []string) {
	if len(aliases) == 0 {
		c.Aliases = ""
		return
	}
	data, err := json.Marshal(aliases)
	if err != nil {
		return
	}
	c.Aliases = string(data)
}

// AliasList 解析存储的别名 JSON
func (c *Character) AliasList() []string {
	if c.Aliases == "" {
		return nil
	}
	var aliases []string
	if err := json.Unmarshal([]byte(c.Aliases), &aliases); err != nil {
		return nil
	}
	return aliases
}

// NameEquals 大小写不敏感的名字匹配
func (c *Character) NameEquals(name string) bool {
	return strings.EqualFold(c.Name, name)
}
