// Package anthropic 提供外部文本生成服务的访问层
package anthropic

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	narrativeRe = regexp.MustCompile(`(?s)NARRATIVE:\s*(.*?)(?:CHOICES:|$)`)
	choicesRe   = regexp.MustCompile(`(?s)CHOICES:\s*(.*)$`)
	ordinalRe   = regexp.MustCompile(`^\d+\.\s*`)
)

// parseStoryWeaver 解析 NARRATIVE/CHOICES 约定输出
//
// 模型未遵循约定时静默退化：narrative 取整段原文，choices 为空。
func parseStoryWeaver(text string) StoryWeaverResult {
	result := StoryWeaverResult{
		Narrative: text,
		Choices:   []string{},
	}

	if m := narrativeRe.FindStringSubmatch(text); m != nil {
		result.Narrative = strings.TrimSpace(m[1])
	}

	m := choicesRe.FindStringSubmatch(text)
	if m == nil {
		return result
	}
	for _, line := range strings.Split(m[1], "\n") {
		cleaned := strings.TrimSpace(ordinalRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if cleaned != "" {
			result.Choices = append(result.Choices, cleaned)
		}
	}
	return result
}

// extractJSONSpan 从模型输出中截取第一个完整 JSON 值（对象或数组）。
// 模型可能在 JSON 前后夹杂多余文本，这里做容错截取。
func extractJSONSpan(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return raw
	}

	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")
	start := -1
	end := -1
	switch {
	case objStart >= 0 && (arrStart < 0 || objStart < arrStart):
		start = objStart
		end = strings.LastIndex(raw, "}")
	case arrStart >= 0:
		start = arrStart
		end = strings.LastIndex(raw, "]")
	}
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}

// parseExtraction 解析抽取调用的 JSON 对象输出
//
// 任何解析失败都返回全空结构而不是错误。
func parseExtraction(text string) *Extraction {
	extraction := emptyExtraction()

	raw := extractJSONSpan(text)
	if raw == "" || !strings.HasPrefix(raw, "{") {
		return extraction
	}

	var parsed Extraction
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return extraction
	}

	if parsed.Characters != nil {
		extraction.Characters = parsed.Characters
	}
	if parsed.Locations != nil {
		extraction.Locations = parsed.Locations
	}
	if parsed.Items != nil {
		extraction.Items = parsed.Items
	}
	if parsed.Events != nil {
		extraction.Events = parsed.Events
	}
	if parsed.PlotThreads != nil {
		extraction.PlotThreads = parsed.PlotThreads
	}
	if parsed.WorldRules != nil {
		extraction.WorldRules = parsed.WorldRules
	}
	if parsed.Relationships != nil {
		extraction.Relationships = parsed.Relationships
	}
	if parsed.ConsistencyIssues != nil {
		extraction.ConsistencyIssues = parsed.ConsistencyIssues
	}
	return extraction
}

// parseConsistencyIssues 解析一致性检查的 JSON 数组输出，失败时返回空切片
func parseConsistencyIssues(text string) []ConsistencyIssue {
	raw := extractJSONSpan(text)
	if raw == "" || !strings.HasPrefix(raw, "[") {
		return []ConsistencyIssue{}
	}

	var issues []ConsistencyIssue
	if err := json.Unmarshal([]byte(raw), &issues); err != nil {
		return []ConsistencyIssue{}
	}
	if issues == nil {
		issues = []ConsistencyIssue{}
	}
	return issues
}

// emptyExtraction 构造全空抽取结果
func emptyExtraction() *Extraction {
	return &Extraction{
		Characters:        []ExtractedCharacter{},
		Locations:         []ExtractedLocation{},
		Items:             []ExtractedItem{},
		Events:            []ExtractedEvent{},
		PlotThreads:       []ExtractedPlotThread{},
		WorldRules:        []ExtractedWorldRule{},
		Relationships:     []ExtractedRelationship{},
		ConsistencyIssues: []ConsistencyIssue{},
	}
}
