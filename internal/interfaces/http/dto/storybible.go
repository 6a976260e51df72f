// Package dto 提供 HTTP 层数据传输对象
package dto

import "github.com/JamalC77/penned-works/internal/application/storybible"

// ExtractResponse 抽取运行响应
type ExtractResponse struct {
	Extracted *storybible.ExtractionCounts `json:"extracted"`
}

// CreateCharacterRequest 手动创建角色请求
type CreateCharacterRequest struct {
	ProjectID           string   `json:"project_id" binding:"required"`
	Name                string   `json:"name" binding:"required"`
	Aliases             []string `json:"aliases"`
	PhysicalDescription string   `json:"physical_description"`
	Age                 string   `json:"age"`
	Personality         string   `json:"personality"`
	Backstory           string   `json:"backstory"`
	Notes               string   `json:"notes"`
	FirstAppearance     string   `json:"first_appearance"`
	IsMainCharacter     bool     `json:"is_main_character"`
}

// UpdateCharacterRequest 角色更新请求，nil 字段表示不修改
type UpdateCharacterRequest struct {
	Name                *string  `json:"name"`
	Aliases             []string `json:"aliases"`
	PhysicalDescription *string  `json:"physical_description"`
	Age                 *string  `json:"age"`
	Personality         *string  `json:"personality"`
	Backstory           *string  `json:"backstory"`
	Notes               *string  `json:"notes"`
	FirstAppearance     *string  `json:"first_appearance"`
	IsMainCharacter     *bool    `json:"is_main_character"`
}
