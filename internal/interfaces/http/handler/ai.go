// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/JamalC77/penned-works/internal/infrastructure/anthropic"
	"github.com/JamalC77/penned-works/internal/interfaces/http/dto"
	apperrors "github.com/JamalC77/penned-works/pkg/errors"
	"github.com/JamalC77/penned-works/pkg/logger"
)

// AIHandler 写作辅助处理器
type AIHandler struct {
	client *anthropic.Client
}

// NewAIHandler 创建写作辅助处理器
func NewAIHandler(client *anthropic.Client) *AIHandler {
	return &AIHandler{client: client}
}

// Feedback 顾问模式
// @Summary 写作反馈
// @Description 对选中段落给出顾问式反馈
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.FeedbackRequest true "反馈请求"
// @Success 200 {object} dto.Response[dto.FeedbackResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/feedback [post]
func (h *AIHandler) Feedback(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	feedback, err := h.client.GetWritingFeedback(ctx, req.SelectedText, req.FullContext, req.Question)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "feedback generation failed", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, &dto.FeedbackResponse{Feedback: feedback})
}

// Generate 代笔模式
// @Summary 按描述生成草稿
// @Description 作者描述想要的内容，按其文风生成正文
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest true "生成请求"
// @Success 200 {object} dto.Response[dto.GenerateResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/generate [post]
func (h *AIHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	text, err := h.client.GenerateFromDescription(ctx, req.Description, req.Context, req.StyleReference)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "draft generation failed", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, &dto.GenerateResponse{Text: text})
}

// StoryWeaver 故事编织模式
// @Summary 交互式续写
// @Description 按作者选择续写剧情并给出三个分支
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.StoryWeaverRequest true "续写请求"
// @Success 200 {object} dto.Response[dto.StoryWeaverResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/storyweaver [post]
func (h *AIHandler) StoryWeaver(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.StoryWeaverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.client.ContinueStory(ctx, req.StoryContext, req.AuthorChoice)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "story continuation failed", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, &dto.StoryWeaverResponse{
		Narrative: result.Narrative,
		Choices:   result.Choices,
	})
}

// Assist 快速润色
// @Summary 快速润色
// @Description 语法、清晰度、力度、精简四种就地修订
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.AssistRequest true "润色请求"
// @Success 200 {object} dto.Response[dto.AssistResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/ai/assist [post]
func (h *AIHandler) Assist(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AssistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	kind := anthropic.AssistKind(req.Kind)
	if !anthropic.ValidAssistKind(kind) {
		dto.BadRequest(c, "invalid assist kind")
		return
	}

	text, err := h.client.QuickAssist(ctx, req.Text, kind)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "quick assist failed", err)
		}
		dto.FromError(c, err)
		return
	}
	dto.Success(c, &dto.AssistResponse{Text: text})
}
