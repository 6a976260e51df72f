package entity

import (
	"time"

	"github.com/google/uuid"
)

// FlagType 一致性问题类型
type FlagType string

const (
	FlagContradiction FlagType = "contradiction"
	FlagUnresolved    FlagType = "unresolved"
	FlagQuestion      FlagType = "question"
)

// FlagStatus 一致性问题处理状态
type FlagStatus string

const (
	FlagOpen     FlagStatus = "open"
	FlagResolved FlagStatus = "resolved"
)

// ConsistencyFlag 一致性问题标记实体
//
// Location1/Location2 记录冲突在稿件中的大致位置描述。
type ConsistencyFlag struct {
	ID          string     `json:"id" gorm:"primaryKey;type:text"`
	ProjectID   string     `json:"project_id" gorm:"index;not null;type:text"`
	Type        FlagType   `json:"type" gorm:"not null;type:text"`
	Description string     `json:"description" gorm:"not null;type:text"`
	Location1   string     `json:"location1,omitempty" gorm:"type:text"`
	Location2   string     `json:"location2,omitempty" gorm:"type:text"`
	Status      FlagStatus `json:"status" gorm:"not null;default:'open';type:text"`
	Resolution  string     `json:"resolution,omitempty" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (ConsistencyFlag) TableName() string {
	return "consistency_flags"
}

// NewConsistencyFlag 创建一致性问题标记，初始状态为 open
func NewConsistencyFlag(projectID string, flagType FlagType, description string) *ConsistencyFlag {
	now := time.Now()
	return &ConsistencyFlag{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Type:        flagType,
		Description: description,
		Status:      FlagOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
