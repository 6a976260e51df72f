// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CharacterRelationship 角色间关系
//
// 端点无序：(A, B) 与 (B, A) 视为同一条关系。
type CharacterRelationship struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	ProjectID    string    `json:"project_id" gorm:"index;not null;type:text"`
	Character1ID string    `json:"character1_id" gorm:"not null;type:text"`
	Character2ID string    `json:"character2_id" gorm:"not null;type:text"`
	Relationship string    `json:"relationship" gorm:"not null;type:text"`
	Notes        string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (CharacterRelationship) TableName() string {
	return "character_relationships"
}

// NewCharacterRelationship 创建角色关系
func NewCharacterRelationship(projectID, char1ID, char2ID, relationship string) *CharacterRelationship {
	return &CharacterRelationship{
		ID:           uuid.NewString(),
		ProjectID:    projectID,
		Character1ID: char1ID,
		Character2ID: char2ID,
		Relationship: relationship,
		CreatedAt:    time.Now(),
	}
}

// SamePair 判断两端角色是否与给定无序对相同
func (r *CharacterRelationship) SamePair(id1, id2 string) bool {
	return (r.Character1ID == id1 && r.Character2ID == id2) ||
		(r.Character1ID == id2 && r.Character2ID == id1)
}
