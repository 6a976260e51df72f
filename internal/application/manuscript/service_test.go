package manuscript

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/JamalC77/penned-works/internal/config"
	"github.com/JamalC77/penned-works/internal/infrastructure/persistence/database"
	apperrors "github.com/JamalC77/penned-works/pkg/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	client, err := database.NewClient(&config.DatabaseConfig{
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return NewService(
		database.NewTxManager(client),
		database.NewProjectRepository(client),
		database.NewChapterRepository(client),
		database.NewVersionRepository(client),
	)
}

func TestCreateProject_SeedsFirstChapter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.CreateProject(ctx, "user-1", "My Novel", "a story")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FirstChapterID == "" {
		t.Fatal("FirstChapterID is empty")
	}

	project, err := svc.GetProject(ctx, "user-1", result.Project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(project.Chapters) != 1 {
		t.Fatalf("len(chapters) = %d, want 1", len(project.Chapters))
	}
	if project.Chapters[0].Title != "Chapter 1" {
		t.Errorf("chapter title = %q, want %q", project.Chapters[0].Title, "Chapter 1")
	}
	if project.Chapters[0].Order != 0 {
		t.Errorf("chapter order = %d, want 0", project.Chapters[0].Order)
	}
	if project.Chapters[0].ID != result.FirstChapterID {
		t.Errorf("chapter id = %q, want %q", project.Chapters[0].ID, result.FirstChapterID)
	}
}

func TestCreateChapter_DefaultTitleAndOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.CreateProject(ctx, "user-1", "My Novel", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chapter, err := svc.CreateChapter(ctx, "user-1", result.Project.ID, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chapter.Title != "Chapter 2" {
		t.Errorf("title = %q, want %q", chapter.Title, "Chapter 2")
	}
	if chapter.Order != 1 {
		t.Errorf("order = %d, want 1", chapter.Order)
	}

	named, err := svc.CreateChapter(ctx, "user-1", result.Project.ID, "Interlude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if named.Title != "Interlude" {
		t.Errorf("title = %q, want %q", named.Title, "Interlude")
	}
	if named.Order != 2 {
		t.Errorf("order = %d, want 2", named.Order)
	}
}

func TestUpdateChapter_ContentAndWordCount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.CreateProject(ctx, "user-1", "My Novel", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := "<p>Hello <b>world</b></p>"
	chapter, err := svc.UpdateChapter(ctx, "user-1", result.FirstChapterID, UpdateChapterInput{Content: &content})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chapter.Content != content {
		t.Errorf("content = %q, want %q", chapter.Content, content)
	}
	if chapter.WordCount != 2 {
		t.Errorf("word count = %d, want 2", chapter.WordCount)
	}
}

// 显式存版本时快照的是更新前的内容，不是本次请求携带的新内容。
func TestUpdateChapter_VersionSnapshotsPreviousContent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.CreateProject(ctx, "user-1", "My Novel", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chapterID := result.FirstChapterID

	old := "<p>first draft</p>"
	if _, err := svc.UpdateChapter(ctx, "user-1", chapterID, UpdateChapterInput{Content: &old}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated := "<p>second draft revised</p>"
	if _, err := svc.UpdateChapter(ctx, "user-1", chapterID, UpdateChapterInput{
		Content:       &updated,
		CreateVersion: true,
		VersionLabel:  "before restore",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	versions, err := svc.ListVersions(ctx, "user-1", chapterID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(versions) != 1 {
		t.Fatalf("len(versions) = %d, want 1", len(versions))
	}
	if versions[0].Content != old {
		t.Errorf("version content = %q, want %q", versions[0].Content, old)
	}
	if versions[0].WordCount != 2 {
		t.Errorf("version word count = %d, want 2", versions[0].WordCount)
	}
	if versions[0].Label != "before restore" {
		t.Errorf("version label = %q, want %q", versions[0].Label, "before restore")
	}

	chapter, err := svc.GetChapter(ctx, "user-1", chapterID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chapter.Content != updated {
		t.Errorf("chapter content = %q, want %q", chapter.Content, updated)
	}
}

// 当前内容为空时不落快照，即便请求要求存版本。
func TestUpdateChapter_NoVersionForEmptyContent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.CreateProject(ctx, "user-1", "My Novel", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := "<p>first save</p>"
	if _, err := svc.UpdateChapter(ctx, "user-1", result.FirstChapterID, UpdateChapterInput{
		Content:       &content,
		CreateVersion: true,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	versions, err := svc.ListVersions(ctx, "user-1", result.FirstChapterID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(versions) != 0 {
		t.Errorf("len(versions) = %d, want 0", len(versions))
	}
}

func TestDeleteChapter_CompactsOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.CreateProject(ctx, "user-1", "My Novel", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.CreateChapter(ctx, "user-1", result.Project.ID, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateChapter(ctx, "user-1", result.Project.ID, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteChapter(ctx, "user-1", second.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	project, err := svc.GetProject(ctx, "user-1", result.Project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(project.Chapters) != 2 {
		t.Fatalf("len(chapters) = %d, want 2", len(project.Chapters))
	}
	for i, ch := range project.Chapters {
		if ch.Order != i {
			t.Errorf("chapters[%d].Order = %d, want %d", i, ch.Order, i)
		}
	}
}

// 越权访问和不存在共用同一个 not found 错误，不暴露资源是否存在。
func TestOwnership_OtherUserGetsNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.CreateProject(ctx, "user-1", "My Novel", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetProject(ctx, "user-2", result.Project.ID); !errors.Is(err, apperrors.ErrProjectNotFound) {
		t.Errorf("GetProject error = %v, want ErrProjectNotFound", err)
	}
	if _, err := svc.GetChapter(ctx, "user-2", result.FirstChapterID); !errors.Is(err, apperrors.ErrChapterNotFound) {
		t.Errorf("GetChapter error = %v, want ErrChapterNotFound", err)
	}
	if err := svc.DeleteProject(ctx, "user-2", result.Project.ID); !errors.Is(err, apperrors.ErrProjectNotFound) {
		t.Errorf("DeleteProject error = %v, want ErrProjectNotFound", err)
	}
	if _, err := svc.GetProject(ctx, "user-1", "no-such-id"); !errors.Is(err, apperrors.ErrProjectNotFound) {
		t.Errorf("GetProject error = %v, want ErrProjectNotFound", err)
	}
}
