// Package anthropic 提供外部文本生成服务的访问层
package anthropic

// StoryWeaverResult 故事编织模式的返回结果
type StoryWeaverResult struct {
	Narrative string   `json:"narrative"`
	Choices   []string `json:"choices"`
}

// AssistKind 快速润色类型
type AssistKind string

const (
	AssistGrammar  AssistKind = "grammar"
	AssistClarity  AssistKind = "clarity"
	AssistStronger AssistKind = "stronger"
	AssistShorter  AssistKind = "shorter"
)

// ValidAssistKind 判断润色类型是否受支持
func ValidAssistKind(kind AssistKind) bool {
	switch kind {
	case AssistGrammar, AssistClarity, AssistStronger, AssistShorter:
		return true
	}
	return false
}

// KnownBible 抽取时提供给模型的已知实体名称上下文
type KnownBible struct {
	Characters []string `json:"characters"`
	Locations  []string `json:"locations"`
	Items      []string `json:"items"`
}

// Empty 判断是否没有任何已知名称
func (k *KnownBible) Empty() bool {
	return k == nil || (len(k.Characters) == 0 && len(k.Locations) == 0 && len(k.Items) == 0)
}

// ExtractedCharacter 模型抽取的角色
type ExtractedCharacter struct {
	Name                string   `json:"name"`
	Aliases             []string `json:"aliases,omitempty"`
	PhysicalDescription string   `json:"physicalDescription,omitempty"`
	Age                 string   `json:"age,omitempty"`
	Personality         string   `json:"personality,omitempty"`
	IsMainCharacter     bool     `json:"isMainCharacter,omitempty"`
}

// ExtractedLocation 模型抽取的地点
type ExtractedLocation struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	SensoryDetails string `json:"sensoryDetails,omitempty"`
	Significance   string `json:"significance,omitempty"`
}

// ExtractedItem 模型抽取的物品
type ExtractedItem struct {
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	Significance     string `json:"significance,omitempty"`
	CurrentPossessor string `json:"currentPossessor,omitempty"`
}

// ExtractedEvent 模型抽取的时间线事件
type ExtractedEvent struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StoryDate   string `json:"storyDate,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

// ExtractedPlotThread 模型抽取的情节线
type ExtractedPlotThread struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// ExtractedWorldRule 模型抽取的世界规则
type ExtractedWorldRule struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Limitations string `json:"limitations,omitempty"`
}

// ExtractedRelationship 模型抽取的角色关系
type ExtractedRelationship struct {
	Character1   string `json:"character1"`
	Character2   string `json:"character2"`
	Relationship string `json:"relationship"`
}

// ConsistencyIssue 模型发现的一致性问题
type ConsistencyIssue struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Location1   string `json:"location1,omitempty"`
	Location2   string `json:"location2,omitempty"`
}

// Extraction 单章抽取结果
//
// 任何解析失败都退化为全空结构，不向调用方传播解析错误。
type Extraction struct {
	Characters        []ExtractedCharacter    `json:"characters"`
	Locations         []ExtractedLocation     `json:"locations"`
	Items             []ExtractedItem         `json:"items"`
	Events            []ExtractedEvent        `json:"events"`
	PlotThreads       []ExtractedPlotThread   `json:"plotThreads"`
	WorldRules        []ExtractedWorldRule    `json:"worldRules"`
	Relationships     []ExtractedRelationship `json:"relationships"`
	ConsistencyIssues []ConsistencyIssue      `json:"consistencyIssues"`
}
