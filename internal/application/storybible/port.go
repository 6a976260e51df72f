// Package storybible 实现故事圣经的抽取与维护
package storybible

import (
	"context"

	"github.com/JamalC77/penned-works/internal/infrastructure/anthropic"
)

// ExtractionGateway 抽取调用的出站端口
type ExtractionGateway interface {
	// ExtractStoryBibleElements 从单章文本抽取故事圣经要素
	ExtractStoryBibleElements(ctx context.Context, chapterText, chapterTitle string, known *anthropic.KnownBible) (*anthropic.Extraction, error)

	// CheckConsistency 检查全稿与故事圣经的一致性
	CheckConsistency(ctx context.Context, manuscript string, known *anthropic.KnownBible) ([]anthropic.ConsistencyIssue, error)
}
