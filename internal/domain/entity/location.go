// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Location 故事圣经中的地点实体
type Location struct {
	ID               string    `json:"id" gorm:"primaryKey;type:text"`
	ProjectID        string    `json:"project_id" gorm:"index;not null;type:text"`
	Name             string    `json:"name" gorm:"not null;type:text"`
	Description      string    `json:"description,omitempty" gorm:"type:text"`
	SensoryDetails   string    `json:"sensory_details,omitempty" gorm:"type:text"`
	Significance     string    `json:"significance,omitempty" gorm:"type:text"`
	ParentLocationID string    `json:"parent_location_id,omitempty" gorm:"type:text"`
	FirstAppearance  string    `json:"first_appearance,omitempty" gorm:"type:text"`
	Notes            string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Location) TableName() string {
	return "locations"
}

// NewLocation 创建地点
func NewLocation(projectID, name string) *Location {
	now := time.Now()
	return &Location{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
