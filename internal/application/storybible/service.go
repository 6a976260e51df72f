// Package storybible 实现故事圣经的抽取与维护
package storybible

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JamalC77/penned-works/internal/application/manuscript"
	"github.com/JamalC77/penned-works/internal/domain/entity"
	"github.com/JamalC77/penned-works/internal/domain/repository"
	apperrors "github.com/JamalC77/penned-works/pkg/errors"
	"github.com/JamalC77/penned-works/pkg/logger"
)

// Bible 项目故事圣经的完整视图
type Bible struct {
	Characters       []*entity.Character             `json:"characters"`
	Locations        []*entity.Location              `json:"locations"`
	Items            []*entity.StoryItem             `json:"items"`
	Events           []*entity.TimelineEvent         `json:"events"`
	PlotThreads      []*entity.PlotThread            `json:"plotThreads"`
	WorldRules       []*entity.WorldRule             `json:"worldRules"`
	Relationships    []*entity.CharacterRelationship `json:"relationships"`
	ConsistencyFlags []*entity.ConsistencyFlag       `json:"consistencyFlags"`
}

// Service 故事圣经应用服务
type Service struct {
	gateway     ExtractionGateway
	extractor   *Extractor
	tx          repository.Transactor
	projectRepo repository.ProjectRepository
	chapterRepo repository.ChapterRepository
	bibleRepo   repository.StoryBibleRepository
}

// NewService 创建故事圣经服务
func NewService(
	gateway ExtractionGateway,
	extractor *Extractor,
	tx repository.Transactor,
	projectRepo repository.ProjectRepository,
	chapterRepo repository.ChapterRepository,
	bibleRepo repository.StoryBibleRepository,
) *Service {
	return &Service{
		gateway:     gateway,
		extractor:   extractor,
		tx:          tx,
		projectRepo: projectRepo,
		chapterRepo: chapterRepo,
		bibleRepo:   bibleRepo,
	}
}

// GetBible 获取项目完整故事圣经，各类别并行加载
func (s *Service) GetBible(ctx context.Context, userID, projectID string) (*Bible, error) {
	if err := s.checkOwnership(ctx, userID, projectID); err != nil {
		return nil, err
	}

	bible := &Bible{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		bible.Characters, err = s.bibleRepo.ListCharacters(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		bible.Locations, err = s.bibleRepo.ListLocations(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		bible.Items, err = s.bibleRepo.ListItems(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		bible.Events, err = s.bibleRepo.ListTimelineEvents(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		bible.PlotThreads, err = s.bibleRepo.ListPlotThreads(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		bible.WorldRules, err = s.bibleRepo.ListWorldRules(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		bible.Relationships, err = s.bibleRepo.ListRelationships(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		bible.ConsistencyFlags, err = s.bibleRepo.ListFlags(gctx, projectID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bible, nil
}

// Extract 对项目全部章节执行抽取
func (s *Service) Extract(ctx context.Context, userID, projectID string) (*ExtractionCounts, error) {
	if err := s.checkOwnership(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.extractor.Run(ctx, projectID)
}

// CheckConsistency 对全稿执行一致性检查并落库新发现的问题
func (s *Service) CheckConsistency(ctx context.Context, userID, projectID string) ([]*entity.ConsistencyFlag, error) {
	if err := s.checkOwnership(ctx, userID, projectID); err != nil {
		return nil, err
	}

	chapters, err := s.chapterRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(chapters) == 0 {
		return nil, apperrors.ErrNoChapters
	}

	var parts []string
	for _, chapter := range chapters {
		plain := manuscript.StripHTML(chapter.Content)
		if plain != "" {
			parts = append(parts, plain)
		}
	}
	if len(parts) == 0 {
		return nil, apperrors.ErrNoChapters
	}

	state, err := s.extractor.loadState(ctx, projectID)
	if err != nil {
		return nil, err
	}

	issues, err := s.gateway.CheckConsistency(ctx, strings.Join(parts, "\n\n"), state.knownNames())
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConsistencyFailed, "consistency check failed")
	}

	// 本次运行发现的问题整批落库
	flags := make([]*entity.ConsistencyFlag, 0, len(issues))
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, issue := range issues {
			if issue.Description == "" {
				continue
			}
			flag := entity.NewConsistencyFlag(projectID, entity.FlagType(issue.Type), issue.Description)
			flag.Location1 = issue.Location1
			flag.Location2 = issue.Location2
			if err := s.bibleRepo.CreateFlag(ctx, flag); err != nil {
				return err
			}
			flags = append(flags, flag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "consistency check finished", "project_id", projectID, "flags", len(flags))
	return flags, nil
}

// CreateCharacterInput 手动创建角色的入参
type CreateCharacterInput struct {
	ProjectID           string
	Name                string
	Aliases             []string
	PhysicalDescription string
	Age                 string
	Personality         string
	Backstory           string
	Notes               string
	FirstAppearance     string
	IsMainCharacter     bool
}

// CreateCharacter 手动创建角色
func (s *Service) CreateCharacter(ctx context.Context, userID string, input CreateCharacterInput) (*entity.Character, error) {
	if err := s.checkOwnership(ctx, userID, input.ProjectID); err != nil {
		return nil, err
	}

	character := entity.NewCharacter(input.ProjectID, input.Name)
	if len(input.Aliases) > 0 {
		character.SetAliases(input.Aliases)
	}
	character.PhysicalDescription = input.PhysicalDescription
	character.Age = input.Age
	character.Personality = input.Personality
	character.Backstory = input.Backstory
	character.Notes = input.Notes
	character.FirstAppearance = input.FirstAppearance
	character.IsMainCharacter = input.IsMainCharacter

	if err := s.bibleRepo.CreateCharacter(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

// GetCharacter 获取单个角色，归属校验经由其项目
func (s *Service) GetCharacter(ctx context.Context, userID, characterID string) (*entity.Character, error) {
	character, err := s.bibleRepo.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, apperrors.ErrCharacterNotFound
	}
	if err := s.checkOwnership(ctx, userID, character.ProjectID); err != nil {
		return nil, apperrors.ErrCharacterNotFound
	}
	return character, nil
}

// UpdateCharacterInput 角色更新入参，nil 字段表示不修改
type UpdateCharacterInput struct {
	Name                *string
	Aliases             []string
	PhysicalDescription *string
	Age                 *string
	Personality         *string
	Backstory           *string
	Notes               *string
	FirstAppearance     *string
	IsMainCharacter     *bool
}

// UpdateCharacter 更新角色
func (s *Service) UpdateCharacter(ctx context.Context, userID, characterID string, input UpdateCharacterInput) (*entity.Character, error) {
	character, err := s.GetCharacter(ctx, userID, characterID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		character.Name = *input.Name
	}
	if input.Aliases != nil {
		character.SetAliases(input.Aliases)
	}
	if input.PhysicalDescription != nil {
		character.PhysicalDescription = *input.PhysicalDescription
	}
	if input.Age != nil {
		character.Age = *input.Age
	}
	if input.Personality != nil {
		character.Personality = *input.Personality
	}
	if input.Backstory != nil {
		character.Backstory = *input.Backstory
	}
	if input.Notes != nil {
		character.Notes = *input.Notes
	}
	if input.FirstAppearance != nil {
		character.FirstAppearance = *input.FirstAppearance
	}
	if input.IsMainCharacter != nil {
		character.IsMainCharacter = *input.IsMainCharacter
	}
	character.UpdatedAt = time.Now()

	if err := s.bibleRepo.UpdateCharacter(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

// DeleteCharacter 删除角色
func (s *Service) DeleteCharacter(ctx context.Context, userID, characterID string) error {
	if _, err := s.GetCharacter(ctx, userID, characterID); err != nil {
		return err
	}
	return s.bibleRepo.DeleteCharacter(ctx, characterID)
}

// checkOwnership 校验项目归属，越权与缺失统一返回 not found
func (s *Service) checkOwnership(ctx context.Context, userID, projectID string) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil || project.UserID != userID {
		return apperrors.ErrProjectNotFound
	}
	return nil
}
