// Package manuscript 实现项目与章节的应用服务
package manuscript

import (
	"context"
	"fmt"
	"time"

	"github.com/JamalC77/penned-works/internal/domain/entity"
	"github.com/JamalC77/penned-works/internal/domain/repository"
	apperrors "github.com/JamalC77/penned-works/pkg/errors"
	"github.com/JamalC77/penned-works/pkg/logger"
	"github.com/JamalC77/penned-works/pkg/metrics"
)

// Service 项目与章节应用服务
type Service struct {
	tx          repository.Transactor
	projectRepo repository.ProjectRepository
	chapterRepo repository.ChapterRepository
	versionRepo repository.VersionRepository
}

// NewService 创建应用服务
func NewService(
	tx repository.Transactor,
	projectRepo repository.ProjectRepository,
	chapterRepo repository.ChapterRepository,
	versionRepo repository.VersionRepository,
) *Service {
	return &Service{
		tx:          tx,
		projectRepo: projectRepo,
		chapterRepo: chapterRepo,
		versionRepo: versionRepo,
	}
}

// CreateProjectResult 创建项目的返回值
type CreateProjectResult struct {
	Project        *entity.Project
	FirstChapterID string
}

// CreateProject 创建项目并附带第一章，两步写入在同一事务内
func (s *Service) CreateProject(ctx context.Context, userID, title, description string) (*CreateProjectResult, error) {
	project := entity.NewProject(userID, title, description)
	chapter := entity.NewChapter(project.ID, "Chapter 1", 0)

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Create(ctx, project); err != nil {
			return err
		}
		return s.chapterRepo.Create(ctx, chapter)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "project created", "project_id", project.ID, "user_id", userID)
	return &CreateProjectResult{Project: project, FirstChapterID: chapter.ID}, nil
}

// ListProjects 获取用户的项目列表，按更新时间倒序
func (s *Service) ListProjects(ctx context.Context, userID string) ([]*entity.Project, error) {
	return s.projectRepo.ListByUser(ctx, userID)
}

// GetProject 获取项目及其章节，越权访问与不存在一样返回 not found
func (s *Service) GetProject(ctx context.Context, userID, projectID string) (*entity.Project, error) {
	project, err := s.projectRepo.GetWithChapters(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.UserID != userID {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}

// UpdateProjectInput 项目更新入参，nil 字段表示不修改
type UpdateProjectInput struct {
	Title       *string
	Description *string
}

// UpdateProject 更新项目元信息
func (s *Service) UpdateProject(ctx context.Context, userID, projectID string, input UpdateProjectInput) (*entity.Project, error) {
	project, err := s.ownedProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject 删除项目及其级联数据
func (s *Service) DeleteProject(ctx context.Context, userID, projectID string) error {
	if _, err := s.ownedProject(ctx, userID, projectID); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, projectID)
}

// CreateChapter 创建章节，标题默认 "Chapter N"，排序接在末尾
func (s *Service) CreateChapter(ctx context.Context, userID, projectID, title string) (*entity.Chapter, error) {
	if _, err := s.ownedProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	var chapter *entity.Chapter
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		count, err := s.chapterRepo.CountByProject(ctx, projectID)
		if err != nil {
			return err
		}
		maxOrder, err := s.chapterRepo.MaxOrder(ctx, projectID)
		if err != nil {
			return err
		}

		chapterTitle := title
		if chapterTitle == "" {
			chapterTitle = fmt.Sprintf("Chapter %d", count+1)
		}

		chapter = entity.NewChapter(projectID, chapterTitle, maxOrder+1)
		return s.chapterRepo.Create(ctx, chapter)
	})
	if err != nil {
		return nil, err
	}
	return chapter, nil
}

// GetChapter 获取章节，归属校验经由其项目
func (s *Service) GetChapter(ctx context.Context, userID, chapterID string) (*entity.Chapter, error) {
	chapter, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, apperrors.ErrChapterNotFound
	}
	if _, err := s.ownedProject(ctx, userID, chapter.ProjectID); err != nil {
		return nil, apperrors.ErrChapterNotFound
	}
	return chapter, nil
}

// UpdateChapterInput 章节更新入参，nil 字段表示不修改
type UpdateChapterInput struct {
	Title         *string
	Content       *string
	CreateVersion bool
	VersionLabel  string
}

// UpdateChapter 更新章节，自动保存与显式存版本共用此入口
//
// CreateVersion 置位且当前内容非空时，先以更新前的内容落一条版本快照，
// 再应用新内容，用于还原版本前保护进行中的草稿。
func (s *Service) UpdateChapter(ctx context.Context, userID, chapterID string, input UpdateChapterInput) (*entity.Chapter, error) {
	chapter, err := s.GetChapter(ctx, userID, chapterID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if input.CreateVersion && chapter.Content != "" {
			version := entity.NewVersion(chapter.ID, chapter.Content, chapter.WordCount, input.VersionLabel)
			if err := s.versionRepo.Create(ctx, version); err != nil {
				return err
			}
		}

		if input.Title != nil {
			chapter.Title = *input.Title
		}
		if input.Content != nil {
			chapter.Content = *input.Content
			chapter.WordCount = CountWords(*input.Content)
		}
		chapter.UpdatedAt = now

		if err := s.chapterRepo.Update(ctx, chapter); err != nil {
			return err
		}
		return s.projectRepo.Touch(ctx, chapter.ProjectID, now)
	})
	if err != nil {
		return nil, err
	}

	metrics.ChapterSavesTotal.WithLabelValues(fmt.Sprintf("%t", input.CreateVersion)).Inc()
	return chapter, nil
}

// DeleteChapter 删除章节并压实剩余章节的排序
func (s *Service) DeleteChapter(ctx context.Context, userID, chapterID string) error {
	chapter, err := s.GetChapter(ctx, userID, chapterID)
	if err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.chapterRepo.Delete(ctx, chapter.ID); err != nil {
			return err
		}

		remaining, err := s.chapterRepo.ListByProject(ctx, chapter.ProjectID)
		if err != nil {
			return err
		}
		for i, ch := range remaining {
			if ch.Order == i {
				continue
			}
			if err := s.chapterRepo.UpdateOrder(ctx, ch.ID, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListVersions 获取章节版本列表，按创建时间倒序
func (s *Service) ListVersions(ctx context.Context, userID, chapterID string) ([]*entity.Version, error) {
	if _, err := s.GetChapter(ctx, userID, chapterID); err != nil {
		return nil, err
	}
	return s.versionRepo.ListByChapter(ctx, chapterID)
}

// ownedProject 按归属加载项目，越权与缺失统一返回 not found
func (s *Service) ownedProject(ctx context.Context, userID, projectID string) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.UserID != userID {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}
