// Package anthropic 提供外部文本生成服务的访问层
package anthropic

import (
	"fmt"
	"strings"
)

// baseContext 所有模式共享的系统提示词前缀
const baseContext = `You are a skilled writing assistant helping authors craft their stories.
You respect the author's voice and vision above all else.
You never impose your own style - you enhance and support theirs.`

// consultantSystem 顾问模式系统提示词
const consultantSystem = baseContext + `

You are in CONSULTANT mode. The author has selected a portion of their text and wants your feedback.
- Give honest, constructive feedback
- Be specific about what works and what could be stronger
- Suggest alternatives only when asked
- Never rewrite their work unless explicitly requested
- Keep responses concise and actionable`

// expedienceSystem 代笔模式系统提示词
const expedienceSystem = baseContext + `

You are in EXPEDIENCE mode. The author knows exactly what they want - they've described it in detail.
Your job is to execute their vision faithfully.

Guidelines:
- Follow their description precisely
- Match the tone/style they've established in their existing work
- Write prose that sounds like THEM, not like you
- Don't add elements they didn't describe
- Don't editorialize or add your own flourishes
- Output ONLY the prose - no explanations, no meta-commentary`

// storyWeaverSystem 故事编织模式系统提示词，约定 NARRATIVE/CHOICES 输出结构
const storyWeaverSystem = baseContext + `

You are in STORY WEAVER mode. This is collaborative, adventure-game style writing.
The author makes choices, you continue the narrative based on those choices.

Guidelines:
- Continue the story based on the author's choice
- Write 2-4 paragraphs of narrative continuation
- End at a decision point
- Offer 3 distinct choices for what happens next
- Choices should be meaningfully different, not just variations
- Keep the author's established tone and style
- This is THEIR story - you're helping them discover it

Output format (use exactly this structure):
NARRATIVE:
[Your narrative continuation here]

CHOICES:
1. [First choice]
2. [Second choice]
3. [Third choice]`

// quickAssistSystem 快速润色系统提示词
const quickAssistSystem = baseContext + `

You are providing quick writing assistance.
Output ONLY the revised text - no explanations, no quotes, no meta-commentary.
If no changes are needed, return the original text exactly.`

// quickAssistPrompts 各润色类型的指令
var quickAssistPrompts = map[AssistKind]string{
	AssistGrammar:  "Fix any grammar or punctuation issues. Keep everything else identical.",
	AssistClarity:  "Improve clarity while keeping the same meaning and voice. Minimal changes only.",
	AssistStronger: "Make this more impactful. Stronger verbs, tighter prose. Keep the author's voice.",
	AssistShorter:  "Condense this while keeping the essential meaning. Cut ruthlessly but preserve voice.",
}

// extractionSystem 故事圣经抽取系统提示词，要求严格 JSON 输出
const extractionSystem = baseContext + `

You are extracting structured story-bible facts from a chapter of a manuscript.
Analyze the chapter and return ONLY a JSON object, no prose before or after, with this shape:
{
  "characters": [{"name": "", "aliases": [], "physicalDescription": "", "age": "", "personality": "", "isMainCharacter": false}],
  "locations": [{"name": "", "description": "", "sensoryDetails": "", "significance": ""}],
  "items": [{"name": "", "description": "", "significance": "", "currentPossessor": ""}],
  "events": [{"title": "", "description": "", "storyDate": "", "duration": ""}],
  "plotThreads": [{"title": "", "description": "", "status": "active|resolved|foreshadowed"}],
  "worldRules": [{"category": "", "name": "", "description": "", "limitations": ""}],
  "relationships": [{"character1": "", "character2": "", "relationship": ""}],
  "consistencyIssues": [{"type": "contradiction|unresolved|question", "description": "", "location1": "", "location2": ""}]
}
Only include entities that actually appear in the chapter text. Use empty arrays for categories with nothing new.
Do not re-describe entities listed as already known; only mention them in relationships or events.`

// consistencySystem 一致性检查系统提示词，要求 JSON 数组输出
const consistencySystem = baseContext + `

You are checking a manuscript for internal consistency against its story bible.
Look for contradictions, unresolved threads, and open questions.
Return ONLY a JSON array, no prose before or after, with this shape:
[{"type": "contradiction|unresolved|question", "description": "", "location1": "", "location2": ""}]
Return an empty array if the manuscript is consistent.`

// feedbackUserMessage 构造顾问模式的用户消息
func feedbackUserMessage(selection, fullContext, question string) string {
	return fmt.Sprintf(`Here's the full context of what I'm working on:

---
%s
---

I've selected this specific passage:

"%s"

My question: %s`, fullContext, selection, question)
}

// generateUserMessage 构造代笔模式的用户消息
func generateUserMessage(description, context, styleNotes string) string {
	var b strings.Builder
	if context != "" {
		fmt.Fprintf(&b, "Here's my existing work for style/tone reference:\n\n---\n%s\n---\n\n", context)
	}
	if styleNotes != "" {
		fmt.Fprintf(&b, "Style notes: %s\n\n", styleNotes)
	}
	fmt.Fprintf(&b, "Here's what I want you to write:\n\n%s\n\nWrite this now. Output only the prose.", description)
	return b.String()
}

// storyWeaverUserMessage 构造故事编织模式的用户消息
func storyWeaverUserMessage(storyContext, authorChoice string) string {
	action := "Begin the story. Set the scene and give me my first choices."
	if authorChoice != "" {
		action = "I choose: " + authorChoice
	}
	return fmt.Sprintf("Story so far:\n\n%s\n\n%s", storyContext, action)
}

// quickAssistUserMessage 构造快速润色的用户消息
func quickAssistUserMessage(text string, kind AssistKind) string {
	return fmt.Sprintf("%s\n\nText to revise:\n%s", quickAssistPrompts[kind], text)
}

// extractionUserMessage 构造抽取调用的用户消息，附带已知实体名称
func extractionUserMessage(chapterText, chapterTitle string, known *KnownBible) string {
	var b strings.Builder
	if !known.Empty() {
		b.WriteString("Already known entities (do not re-describe these):\n")
		if len(known.Characters) > 0 {
			fmt.Fprintf(&b, "Characters: %s\n", strings.Join(known.Characters, ", "))
		}
		if len(known.Locations) > 0 {
			fmt.Fprintf(&b, "Locations: %s\n", strings.Join(known.Locations, ", "))
		}
		if len(known.Items) > 0 {
			fmt.Fprintf(&b, "Items: %s\n", strings.Join(known.Items, ", "))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Chapter title: %s\n\nChapter text:\n\n%s", chapterTitle, chapterText)
	return b.String()
}

// consistencyUserMessage 构造一致性检查的用户消息
func consistencyUserMessage(manuscript string, known *KnownBible) string {
	var b strings.Builder
	if !known.Empty() {
		b.WriteString("Story bible entities:\n")
		if len(known.Characters) > 0 {
			fmt.Fprintf(&b, "Characters: %s\n", strings.Join(known.Characters, ", "))
		}
		if len(known.Locations) > 0 {
			fmt.Fprintf(&b, "Locations: %s\n", strings.Join(known.Locations, ", "))
		}
		if len(known.Items) > 0 {
			fmt.Fprintf(&b, "Items: %s\n", strings.Join(known.Items, ", "))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Manuscript:\n\n%s", manuscript)
	return b.String()
}
