// Package storybible 实现故事圣经的抽取与维护
package storybible

import (
	"context"
	"strings"
	"time"

	"github.com/JamalC77/penned-works/internal/application/manuscript"
	"github.com/JamalC77/penned-works/internal/domain/entity"
	"github.com/JamalC77/penned-works/internal/domain/repository"
	"github.com/JamalC77/penned-works/internal/infrastructure/anthropic"
	apperrors "github.com/JamalC77/penned-works/pkg/errors"
	"github.com/JamalC77/penned-works/pkg/logger"
	"github.com/JamalC77/penned-works/pkg/metrics"
)

// ExtractionCounts 本次运行各类别新插入的条数
type ExtractionCounts struct {
	Characters       int `json:"characters"`
	Locations        int `json:"locations"`
	Items            int `json:"items"`
	Events           int `json:"events"`
	PlotThreads      int `json:"plotThreads"`
	WorldRules       int `json:"worldRules"`
	Relationships    int `json:"relationships"`
	ConsistencyFlags int `json:"consistencyFlags"`
}

// Extractor 故事圣经抽取流水线
//
// 第一遍逐章抽取实体并按名字去重合并，第二遍在全部角色拿到稳定 ID
// 后再抽一次，只为落角色关系。单章合并在事务内完成，但跨章不回滚：
// 某章抽取失败时整个操作报错，已提交的前序章节保留。
type Extractor struct {
	gateway     ExtractionGateway
	tx          repository.Transactor
	chapterRepo repository.ChapterRepository
	bibleRepo   repository.StoryBibleRepository
}

// NewExtractor 创建抽取流水线
func NewExtractor(
	gateway ExtractionGateway,
	tx repository.Transactor,
	chapterRepo repository.ChapterRepository,
	bibleRepo repository.StoryBibleRepository,
) *Extractor {
	return &Extractor{
		gateway:     gateway,
		tx:          tx,
		chapterRepo: chapterRepo,
		bibleRepo:   bibleRepo,
	}
}

// Run 对项目全部章节执行抽取，返回各类别新插入条数
func (e *Extractor) Run(ctx context.Context, projectID string) (*ExtractionCounts, error) {
	start := time.Now()

	counts, err := e.run(ctx, projectID)
	if err != nil {
		metrics.ExtractionRunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.ExtractionRunsTotal.WithLabelValues("success").Inc()
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
	metrics.ExtractionEntitiesTotal.WithLabelValues("characters").Add(float64(counts.Characters))
	metrics.ExtractionEntitiesTotal.WithLabelValues("locations").Add(float64(counts.Locations))
	metrics.ExtractionEntitiesTotal.WithLabelValues("items").Add(float64(counts.Items))
	metrics.ExtractionEntitiesTotal.WithLabelValues("events").Add(float64(counts.Events))
	metrics.ExtractionEntitiesTotal.WithLabelValues("plot_threads").Add(float64(counts.PlotThreads))
	metrics.ExtractionEntitiesTotal.WithLabelValues("world_rules").Add(float64(counts.WorldRules))
	metrics.ExtractionEntitiesTotal.WithLabelValues("relationships").Add(float64(counts.Relationships))
	metrics.ExtractionEntitiesTotal.WithLabelValues("consistency_flags").Add(float64(counts.ConsistencyFlags))

	return counts, nil
}

func (e *Extractor) run(ctx context.Context, projectID string) (*ExtractionCounts, error) {
	chapters, err := e.chapterRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(chapters) == 0 {
		return nil, apperrors.ErrNoChapters
	}

	state, err := e.loadState(ctx, projectID)
	if err != nil {
		return nil, err
	}

	counts := &ExtractionCounts{}

	// 第一遍：逐章抽取实体
	for _, chapter := range chapters {
		plain := manuscript.StripHTML(chapter.Content)
		if plain == "" {
			continue
		}

		extraction, err := e.gateway.ExtractStoryBibleElements(ctx, plain, chapter.Title, state.knownNames())
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeExtractionFailed, "story bible extraction failed")
		}

		err = e.tx.WithTransaction(ctx, func(ctx context.Context) error {
			return e.mergeChapter(ctx, projectID, chapter, extraction, state, counts)
		})
		if err != nil {
			return nil, err
		}

		logger.Info(ctx, "chapter extracted",
			"project_id", projectID,
			"chapter_id", chapter.ID,
			"chapter_title", chapter.Title,
		)
	}

	// 第二遍：角色 ID 齐备后抽取关系
	allCharacters, err := e.bibleRepo.ListCharacters(ctx, projectID)
	if err != nil {
		return nil, err
	}
	existingRels, err := e.bibleRepo.ListRelationships(ctx, projectID)
	if err != nil {
		return nil, err
	}

	for _, chapter := range chapters {
		plain := manuscript.StripHTML(chapter.Content)
		if plain == "" {
			continue
		}

		extraction, err := e.gateway.ExtractStoryBibleElements(ctx, plain, chapter.Title, nil)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeExtractionFailed, "story bible extraction failed")
		}

		for _, rel := range extraction.Relationships {
			char1 := findCharacter(allCharacters, rel.Character1)
			char2 := findCharacter(allCharacters, rel.Character2)
			if char1 == nil || char2 == nil {
				// 端点未解析的关系静默跳过
				continue
			}
			if hasRelationship(existingRels, char1.ID, char2.ID) {
				continue
			}

			row := entity.NewCharacterRelationship(projectID, char1.ID, char2.ID, rel.Relationship)
			if err := e.bibleRepo.CreateRelationship(ctx, row); err != nil {
				return nil, err
			}
			existingRels = append(existingRels, row)
			counts.Relationships++
		}
	}

	return counts, nil
}

// mergeChapter 将单章抽取结果按名字去重合并进故事圣经
func (e *Extractor) mergeChapter(
	ctx context.Context,
	projectID string,
	chapter *entity.Chapter,
	extraction *anthropic.Extraction,
	state *bibleState,
	counts *ExtractionCounts,
) error {
	for _, char := range extraction.Characters {
		if char.Name == "" || state.hasCharacter(char.Name) {
			continue
		}
		row := entity.NewCharacter(projectID, char.Name)
		if len(char.Aliases) > 0 {
			row.SetAliases(char.Aliases)
		}
		row.PhysicalDescription = char.PhysicalDescription
		row.Age = char.Age
		row.Personality = char.Personality
		row.IsMainCharacter = char.IsMainCharacter
		row.FirstAppearance = chapter.Title
		if err := e.bibleRepo.CreateCharacter(ctx, row); err != nil {
			return err
		}
		state.characters = append(state.characters, row.Name)
		counts.Characters++
	}

	for _, loc := range extraction.Locations {
		if loc.Name == "" || state.hasLocation(loc.Name) {
			continue
		}
		row := entity.NewLocation(projectID, loc.Name)
		row.Description = loc.Description
		row.SensoryDetails = loc.SensoryDetails
		row.Significance = loc.Significance
		row.FirstAppearance = chapter.Title
		if err := e.bibleRepo.CreateLocation(ctx, row); err != nil {
			return err
		}
		state.locations = append(state.locations, row.Name)
		counts.Locations++
	}

	for _, item := range extraction.Items {
		if item.Name == "" || state.hasItem(item.Name) {
			continue
		}
		row := entity.NewStoryItem(projectID, item.Name)
		row.Description = item.Description
		row.Significance = item.Significance
		row.CurrentPossessor = item.CurrentPossessor
		row.FirstAppearance = chapter.Title
		if err := e.bibleRepo.CreateItem(ctx, row); err != nil {
			return err
		}
		state.items = append(state.items, row.Name)
		counts.Items++
	}

	// 时间线事件不去重，排序接在已有事件之后
	for _, event := range extraction.Events {
		if event.Title == "" {
			continue
		}
		row := entity.NewTimelineEvent(projectID, event.Title, state.eventBaseline+counts.Events)
		row.Description = event.Description
		row.StoryDate = event.StoryDate
		row.Duration = event.Duration
		row.ChapterID = chapter.ID
		if err := e.bibleRepo.CreateTimelineEvent(ctx, row); err != nil {
			return err
		}
		counts.Events++
	}

	for _, thread := range extraction.PlotThreads {
		if thread.Title == "" || state.hasPlotThread(thread.Title) {
			continue
		}
		row := entity.NewPlotThread(projectID, thread.Title)
		row.Description = thread.Description
		if status := entity.PlotThreadStatus(thread.Status); status != "" {
			row.Status = status
		}
		row.IntroducedIn = chapter.Title
		if err := e.bibleRepo.CreatePlotThread(ctx, row); err != nil {
			return err
		}
		state.plotThreads = append(state.plotThreads, row.Title)
		counts.PlotThreads++
	}

	for _, rule := range extraction.WorldRules {
		if rule.Name == "" || state.hasWorldRule(rule.Name) {
			continue
		}
		row := entity.NewWorldRule(projectID, rule.Category, rule.Name)
		row.Description = rule.Description
		row.Limitations = rule.Limitations
		if err := e.bibleRepo.CreateWorldRule(ctx, row); err != nil {
			return err
		}
		state.worldRules = append(state.worldRules, row.Name)
		counts.WorldRules++
	}

	// 一致性问题无条件落库，初始状态 open
	for _, issue := range extraction.ConsistencyIssues {
		if issue.Description == "" {
			continue
		}
		row := entity.NewConsistencyFlag(projectID, entity.FlagType(issue.Type), issue.Description)
		row.Location1 = issue.Location1
		row.Location2 = issue.Location2
		if err := e.bibleRepo.CreateFlag(ctx, row); err != nil {
			return err
		}
		counts.ConsistencyFlags++
	}

	return nil
}

// bibleState 抽取过程中的已知名称集合
type bibleState struct {
	characters  []string
	locations   []string
	items       []string
	plotThreads []string
	worldRules  []string

	// eventBaseline 运行开始时已有的时间线事件数
	eventBaseline int
}

// loadState 加载项目当前的故事圣经名称集合
func (e *Extractor) loadState(ctx context.Context, projectID string) (*bibleState, error) {
	state := &bibleState{}

	characters, err := e.bibleRepo.ListCharacters(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, c := range characters {
		state.characters = append(state.characters, c.Name)
	}

	locations, err := e.bibleRepo.ListLocations(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, l := range locations {
		state.locations = append(state.locations, l.Name)
	}

	items, err := e.bibleRepo.ListItems(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, i := range items {
		state.items = append(state.items, i.Name)
	}

	threads, err := e.bibleRepo.ListPlotThreads(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, t := range threads {
		state.plotThreads = append(state.plotThreads, t.Title)
	}

	rules, err := e.bibleRepo.ListWorldRules(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, r := range rules {
		state.worldRules = append(state.worldRules, r.Name)
	}

	eventCount, err := e.bibleRepo.CountTimelineEvents(ctx, projectID)
	if err != nil {
		return nil, err
	}
	state.eventBaseline = int(eventCount)

	return state, nil
}

// knownNames 构造传给模型的已知名称上下文
func (s *bibleState) knownNames() *anthropic.KnownBible {
	return &anthropic.KnownBible{
		Characters: s.characters,
		Locations:  s.locations,
		Items:      s.items,
	}
}

func (s *bibleState) hasCharacter(name string) bool   { return containsFold(s.characters, name) }
func (s *bibleState) hasLocation(name string) bool    { return containsFold(s.locations, name) }
func (s *bibleState) hasItem(name string) bool        { return containsFold(s.items, name) }
func (s *bibleState) hasPlotThread(title string) bool { return containsFold(s.plotThreads, title) }
func (s *bibleState) hasWorldRule(name string) bool   { return containsFold(s.worldRules, name) }

// containsFold 大小写不敏感的线性查找
func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// findCharacter 按名字大小写不敏感地解析角色
func findCharacter(characters []*entity.Character, name string) *entity.Character {
	for _, c := range characters {
		if c.NameEquals(name) {
			return c
		}
	}
	return nil
}

// hasRelationship 按无序端点对判断关系是否已存在
func hasRelationship(rels []*entity.CharacterRelationship, id1, id2 string) bool {
	for _, r := range rels {
		if r.SamePair(id1, id2) {
			return true
		}
	}
	return false
}
