package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlotThreadStatus 情节线状态
type PlotThreadStatus string

const (
	PlotThreadActive       PlotThreadStatus = "active"
	PlotThreadResolved     PlotThreadStatus = "resolved"
	PlotThreadForeshadowed PlotThreadStatus = "foreshadowed"
)

// PlotThread 情节线实体
type PlotThread struct {
	ID           string           `json:"id" gorm:"primaryKey;type:text"`
	ProjectID    string           `json:"project_id" gorm:"index;not null;type:text"`
	Title        string           `json:"title" gorm:"not null;type:text"`
	Description  string           `json:"description,omitempty" gorm:"type:text"`
	Status       PlotThreadStatus `json:"status" gorm:"not null;default:'active';type:text"`
	IntroducedIn string           `json:"introduced_in,omitempty" gorm:"type:text"`
	ResolvedIn   string           `json:"resolved_in,omitempty" gorm:"type:text"`
	Notes        string           `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt    time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (PlotThread) TableName() string {
	return "plot_threads"
}

// NewPlotThread 创建情节线
func NewPlotThread(projectID, title string) *PlotThread {
	now := time.Now()
	return &PlotThread{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Title:     title,
		Status:    PlotThreadActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TitleEquals 判断标题是否相同（忽略大小写）
func (p *PlotThread) TitleEquals(other string) bool {
	return strings.EqualFold(p.Title, other)
}
