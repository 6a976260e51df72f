// Package dto 提供 HTTP 层数据传输对象
package dto

// FeedbackRequest 顾问模式请求
type FeedbackRequest struct {
	SelectedText string `json:"selected_text" binding:"required"`
	FullContext  string `json:"full_context"`
	Question     string `json:"question" binding:"required"`
}

// FeedbackResponse 顾问模式响应
type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

// GenerateRequest 代笔模式请求
type GenerateRequest struct {
	Description    string `json:"description" binding:"required"`
	Context        string `json:"context"`
	StyleReference string `json:"style_reference"`
}

// GenerateResponse 代笔模式响应
type GenerateResponse struct {
	Text string `json:"text"`
}

// StoryWeaverRequest 故事编织模式请求
type StoryWeaverRequest struct {
	StoryContext string `json:"story_context" binding:"required"`
	AuthorChoice string `json:"author_choice"`
}

// StoryWeaverResponse 故事编织模式响应
type StoryWeaverResponse struct {
	Narrative string   `json:"narrative"`
	Choices   []string `json:"choices"`
}

// AssistRequest 快速润色请求
type AssistRequest struct {
	Text string `json:"text" binding:"required"`
	Kind string `json:"kind" binding:"required"`
}

// AssistResponse 快速润色响应
type AssistResponse struct {
	Text string `json:"text"`
}
