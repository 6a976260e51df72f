package storybible

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/JamalC77/penned-works/internal/config"
	"github.com/JamalC77/penned-works/internal/domain/entity"
	"github.com/JamalC77/penned-works/internal/infrastructure/anthropic"
	"github.com/JamalC77/penned-works/internal/infrastructure/persistence/database"
	apperrors "github.com/JamalC77/penned-works/pkg/errors"
)

// stubGateway 按章节标题返回固定抽取结果
type stubGateway struct {
	byTitle map[string]*anthropic.Extraction
	issues  []anthropic.ConsistencyIssue
	failOn  string
	calls   int
}

func (g *stubGateway) ExtractStoryBibleElements(ctx context.Context, chapterText, chapterTitle string, known *anthropic.KnownBible) (*anthropic.Extraction, error) {
	g.calls++
	if g.failOn != "" && chapterTitle == g.failOn {
		return nil, errors.New("provider unavailable")
	}
	if extraction, ok := g.byTitle[chapterTitle]; ok {
		return extraction, nil
	}
	return &anthropic.Extraction{}, nil
}

func (g *stubGateway) CheckConsistency(ctx context.Context, manuscript string, known *anthropic.KnownBible) ([]anthropic.ConsistencyIssue, error) {
	return g.issues, nil
}

type fixture struct {
	gateway   *stubGateway
	extractor *Extractor
	service   *Service
	bibleRepo *database.StoryBibleRepository
	projectID string
}

func newFixture(t *testing.T, chapters map[string]string) *fixture {
	t.Helper()

	client, err := database.NewClient(&config.DatabaseConfig{
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	projectRepo := database.NewProjectRepository(client)
	chapterRepo := database.NewChapterRepository(client)
	bibleRepo := database.NewStoryBibleRepository(client)

	project := entity.NewProject("user-1", "My Novel", "")
	if err := projectRepo.Create(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}
	order := 0
	for _, title := range sortedTitles(chapters) {
		chapter := entity.NewChapter(project.ID, title, order)
		chapter.Content = chapters[title]
		if err := chapterRepo.Create(ctx, chapter); err != nil {
			t.Fatalf("create chapter: %v", err)
		}
		order++
	}

	gateway := &stubGateway{byTitle: map[string]*anthropic.Extraction{}}
	txManager := database.NewTxManager(client)
	extractor := NewExtractor(gateway, txManager, chapterRepo, bibleRepo)
	service := NewService(gateway, extractor, txManager, projectRepo, chapterRepo, bibleRepo)

	return &fixture{
		gateway:   gateway,
		extractor: extractor,
		service:   service,
		bibleRepo: bibleRepo,
		projectID: project.ID,
	}
}

// sortedTitles 按 "Chapter N" 标题约定保持插入顺序稳定
func sortedTitles(chapters map[string]string) []string {
	titles := make([]string, 0, len(chapters))
	for i := 1; i <= len(chapters); i++ {
		titles = append(titles, fmt.Sprintf("Chapter %d", i))
	}
	return titles
}

func TestExtractor_FirstRun(t *testing.T) {
	f := newFixture(t, map[string]string{
		"Chapter 1": "<p>Mira meets Toren at the harbor.</p>",
		"Chapter 2": "<p>Selene watches from the lighthouse.</p>",
	})
	f.gateway.byTitle["Chapter 1"] = &anthropic.Extraction{
		Characters: []anthropic.ExtractedCharacter{
			{Name: "Mira", IsMainCharacter: true},
			{Name: "Toren"},
		},
		Locations:   []anthropic.ExtractedLocation{{Name: "The Harbor"}},
		Items:       []anthropic.ExtractedItem{{Name: "Brass Compass", CurrentPossessor: "Mira"}},
		Events:      []anthropic.ExtractedEvent{{Title: "Mira arrives"}},
		PlotThreads: []anthropic.ExtractedPlotThread{{Title: "The missing ship", Status: "active"}},
		WorldRules:  []anthropic.ExtractedWorldRule{{Category: "magic", Name: "Tide binding"}},
		Relationships: []anthropic.ExtractedRelationship{
			{Character1: "Mira", Character2: "Toren", Relationship: "siblings"},
		},
		ConsistencyIssues: []anthropic.ConsistencyIssue{
			{Type: "contradiction", Description: "Harbor is both north and south of town"},
		},
	}
	f.gateway.byTitle["Chapter 2"] = &anthropic.Extraction{
		// 重复角色大小写不同，仍按已知名字去重。
		Characters: []anthropic.ExtractedCharacter{
			{Name: "mira"},
			{Name: "Selene"},
		},
		Events: []anthropic.ExtractedEvent{{Title: "Selene signals"}},
		Relationships: []anthropic.ExtractedRelationship{
			// 端点顺序相反且大小写不同，无序对去重后不再插入。
			{Character1: "toren", Character2: "MIRA", Relationship: "siblings"},
			// 未解析端点的关系静默跳过。
			{Character1: "Mira", Character2: "Ghost", Relationship: "haunts"},
		},
	}

	counts, err := f.extractor.Run(context.Background(), f.projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counts.Characters != 3 {
		t.Errorf("characters = %d, want 3", counts.Characters)
	}
	if counts.Locations != 1 {
		t.Errorf("locations = %d, want 1", counts.Locations)
	}
	if counts.Items != 1 {
		t.Errorf("items = %d, want 1", counts.Items)
	}
	if counts.Events != 2 {
		t.Errorf("events = %d, want 2", counts.Events)
	}
	if counts.PlotThreads != 1 {
		t.Errorf("plot threads = %d, want 1", counts.PlotThreads)
	}
	if counts.WorldRules != 1 {
		t.Errorf("world rules = %d, want 1", counts.WorldRules)
	}
	if counts.Relationships != 1 {
		t.Errorf("relationships = %d, want 1", counts.Relationships)
	}
	if counts.ConsistencyFlags != 1 {
		t.Errorf("consistency flags = %d, want 1", counts.ConsistencyFlags)
	}

	ctx := context.Background()
	characters, err := f.bibleRepo.ListCharacters(ctx, f.projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(characters) != 3 {
		t.Fatalf("len(characters) = %d, want 3", len(characters))
	}
	if characters[0].FirstAppearance != "Chapter 1" {
		t.Errorf("first appearance = %q, want %q", characters[0].FirstAppearance, "Chapter 1")
	}

	events, err := f.bibleRepo.ListTimelineEvents(ctx, f.projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	for i, event := range events {
		if event.Order != i {
			t.Errorf("events[%d].Order = %d, want %d", i, event.Order, i)
		}
	}

	flags, err := f.bibleRepo.ListFlags(ctx, f.projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(flags) != 1 {
		t.Fatalf("len(flags) = %d, want 1", len(flags))
	}
	if flags[0].Status != entity.FlagOpen {
		t.Errorf("flag status = %q, want %q", flags[0].Status, entity.FlagOpen)
	}
}

// 第二次运行时已知实体不再插入，时间线事件不去重且排序接在已有事件后。
func TestExtractor_SecondRun(t *testing.T) {
	f := newFixture(t, map[string]string{
		"Chapter 1": "<p>Mira meets Toren at the harbor.</p>",
	})
	f.gateway.byTitle["Chapter 1"] = &anthropic.Extraction{
		Characters: []anthropic.ExtractedCharacter{{Name: "Mira"}, {Name: "Toren"}},
		Locations:  []anthropic.ExtractedLocation{{Name: "The Harbor"}},
		Events:     []anthropic.ExtractedEvent{{Title: "Mira arrives"}},
		Relationships: []anthropic.ExtractedRelationship{
			{Character1: "Mira", Character2: "Toren", Relationship: "siblings"},
		},
	}

	ctx := context.Background()
	if _, err := f.extractor.Run(ctx, f.projectID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts, err := f.extractor.Run(ctx, f.projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.Characters != 0 {
		t.Errorf("characters = %d, want 0", counts.Characters)
	}
	if counts.Locations != 0 {
		t.Errorf("locations = %d, want 0", counts.Locations)
	}
	if counts.Relationships != 0 {
		t.Errorf("relationships = %d, want 0", counts.Relationships)
	}
	if counts.Events != 1 {
		t.Errorf("events = %d, want 1", counts.Events)
	}

	events, err := f.bibleRepo.ListTimelineEvents(ctx, f.projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[1].Order != 1 {
		t.Errorf("events[1].Order = %d, want 1", events[1].Order)
	}
}

func TestExtractor_NoChapters(t *testing.T) {
	f := newFixture(t, map[string]string{})

	if _, err := f.extractor.Run(context.Background(), f.projectID); !errors.Is(err, apperrors.ErrNoChapters) {
		t.Errorf("error = %v, want ErrNoChapters", err)
	}
}

func TestExtractor_SkipsEmptyChapters(t *testing.T) {
	f := newFixture(t, map[string]string{
		"Chapter 1": "",
		"Chapter 2": "<p></p>",
	})

	counts, err := f.extractor.Run(context.Background(), f.projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.gateway.calls != 0 {
		t.Errorf("gateway calls = %d, want 0", f.gateway.calls)
	}
	if counts.Characters != 0 || counts.Events != 0 {
		t.Errorf("counts = %+v, want all zero", counts)
	}
}

// 某章抽取失败时整个操作报错，已提交的前序章节保留。
func TestExtractor_FailureKeepsCommittedChapters(t *testing.T) {
	f := newFixture(t, map[string]string{
		"Chapter 1": "<p>Mira meets Toren.</p>",
		"Chapter 2": "<p>The storm hits.</p>",
	})
	f.gateway.byTitle["Chapter 1"] = &anthropic.Extraction{
		Characters: []anthropic.ExtractedCharacter{{Name: "Mira"}},
	}
	f.gateway.failOn = "Chapter 2"

	ctx := context.Background()
	_, err := f.extractor.Run(ctx, f.projectID)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeExtractionFailed {
		t.Errorf("error code = %v, want CodeExtractionFailed", apperrors.AsAppError(err).Code)
	}

	characters, err := f.bibleRepo.ListCharacters(ctx, f.projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(characters) != 1 {
		t.Errorf("len(characters) = %d, want 1", len(characters))
	}
}

func TestService_Extract_Ownership(t *testing.T) {
	f := newFixture(t, map[string]string{
		"Chapter 1": "<p>Mira meets Toren.</p>",
	})

	if _, err := f.service.Extract(context.Background(), "user-2", f.projectID); !errors.Is(err, apperrors.ErrProjectNotFound) {
		t.Errorf("error = %v, want ErrProjectNotFound", err)
	}
}

func TestService_CheckConsistency(t *testing.T) {
	f := newFixture(t, map[string]string{
		"Chapter 1": "<p>Mira meets Toren.</p>",
	})
	f.gateway.issues = []anthropic.ConsistencyIssue{
		{Type: "contradiction", Description: "Toren's eyes change color", Location1: "Chapter 1"},
		{Type: "question", Description: ""},
	}

	ctx := context.Background()
	flags, err := f.service.CheckConsistency(ctx, "user-1", f.projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 空描述的问题被丢弃。
	if len(flags) != 1 {
		t.Fatalf("len(flags) = %d, want 1", len(flags))
	}
	if flags[0].Type != entity.FlagContradiction {
		t.Errorf("flag type = %q, want %q", flags[0].Type, entity.FlagContradiction)
	}
	if flags[0].Status != entity.FlagOpen {
		t.Errorf("flag status = %q, want %q", flags[0].Status, entity.FlagOpen)
	}

	stored, err := f.bibleRepo.ListFlags(ctx, f.projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("len(stored) = %d, want 1", len(stored))
	}
}

func TestService_GetBible(t *testing.T) {
	f := newFixture(t, map[string]string{
		"Chapter 1": "<p>Mira meets Toren at the harbor.</p>",
	})
	f.gateway.byTitle["Chapter 1"] = &anthropic.Extraction{
		Characters: []anthropic.ExtractedCharacter{{Name: "Mira"}, {Name: "Toren"}},
		Locations:  []anthropic.ExtractedLocation{{Name: "The Harbor"}},
		Relationships: []anthropic.ExtractedRelationship{
			{Character1: "Mira", Character2: "Toren", Relationship: "siblings"},
		},
	}

	ctx := context.Background()
	if _, err := f.extractor.Run(ctx, f.projectID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bible, err := f.service.GetBible(ctx, "user-1", f.projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bible.Characters) != 2 {
		t.Errorf("len(characters) = %d, want 2", len(bible.Characters))
	}
	if len(bible.Locations) != 1 {
		t.Errorf("len(locations) = %d, want 1", len(bible.Locations))
	}
	if len(bible.Relationships) != 1 {
		t.Errorf("len(relationships) = %d, want 1", len(bible.Relationships))
	}
}
