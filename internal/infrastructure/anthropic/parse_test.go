package anthropic

import (
	"testing"
)

func TestParseStoryWeaver_NarrativeAndChoices(t *testing.T) {
	text := "NARRATIVE: The door creaks open and cold air rushes in.\nCHOICES:\n1. Step inside\n2. Call out first\n3. Close the door and leave"

	result := parseStoryWeaver(text)

	if result.Narrative != "The door creaks open and cold air rushes in." {
		t.Errorf("narrative = %q, want %q", result.Narrative, "The door creaks open and cold air rushes in.")
	}
	if len(result.Choices) != 3 {
		t.Fatalf("len(choices) = %d, want 3", len(result.Choices))
	}
	if result.Choices[0] != "Step inside" {
		t.Errorf("choices[0] = %q, want %q", result.Choices[0], "Step inside")
	}
	if result.Choices[2] != "Close the door and leave" {
		t.Errorf("choices[2] = %q, want %q", result.Choices[2], "Close the door and leave")
	}
}

// 模型未遵循 NARRATIVE/CHOICES 约定时整段原文作为叙事，选项为空。
func TestParseStoryWeaver_Degraded(t *testing.T) {
	text := "The story simply continues without any structure."

	result := parseStoryWeaver(text)

	if result.Narrative != text {
		t.Errorf("narrative = %q, want full text", result.Narrative)
	}
	if result.Choices == nil {
		t.Fatal("choices is nil, want empty slice")
	}
	if len(result.Choices) != 0 {
		t.Errorf("len(choices) = %d, want 0", len(result.Choices))
	}
}

func TestParseStoryWeaver_BlankChoiceLines(t *testing.T) {
	text := "NARRATIVE: A quiet night.\nCHOICES:\n1. Sleep\n\n   \n2. Keep watch"

	result := parseStoryWeaver(text)

	if len(result.Choices) != 2 {
		t.Fatalf("len(choices) = %d, want 2", len(result.Choices))
	}
	if result.Choices[1] != "Keep watch" {
		t.Errorf("choices[1] = %q, want %q", result.Choices[1], "Keep watch")
	}
}

func TestExtractJSONSpan_SurroundingProse(t *testing.T) {
	raw := "Here is the result you asked for:\n{\"name\": \"Mira\"}\nLet me know if you need more."

	got := extractJSONSpan(raw)

	if got != `{"name": "Mira"}` {
		t.Errorf("span = %q, want %q", got, `{"name": "Mira"}`)
	}
}

func TestExtractJSONSpan_Array(t *testing.T) {
	raw := "```json\n[{\"type\": \"contradiction\"}]\n```"

	got := extractJSONSpan(raw)

	if got != `[{"type": "contradiction"}]` {
		t.Errorf("span = %q, want %q", got, `[{"type": "contradiction"}]`)
	}
}

func TestParseExtraction_Valid(t *testing.T) {
	text := `Sure. {"characters":[{"name":"Mira","isMainCharacter":true}],"relationships":[{"character1":"Mira","character2":"Toren","relationship":"siblings"}]}`

	extraction := parseExtraction(text)

	if len(extraction.Characters) != 1 {
		t.Fatalf("len(characters) = %d, want 1", len(extraction.Characters))
	}
	if extraction.Characters[0].Name != "Mira" {
		t.Errorf("characters[0].Name = %q, want %q", extraction.Characters[0].Name, "Mira")
	}
	if !extraction.Characters[0].IsMainCharacter {
		t.Error("characters[0].IsMainCharacter = false, want true")
	}
	if len(extraction.Relationships) != 1 {
		t.Fatalf("len(relationships) = %d, want 1", len(extraction.Relationships))
	}
	// 缺失的分类保持空切片而不是 nil。
	if extraction.Events == nil {
		t.Error("events is nil, want empty slice")
	}
}

func TestParseExtraction_Garbage(t *testing.T) {
	for _, text := range []string{"", "not json at all", "{broken json", "[1,2,3"} {
		extraction := parseExtraction(text)
		if extraction == nil {
			t.Fatalf("parseExtraction(%q) = nil", text)
		}
		if len(extraction.Characters) != 0 || len(extraction.Events) != 0 {
			t.Errorf("parseExtraction(%q) not empty", text)
		}
	}
}

func TestParseConsistencyIssues_Valid(t *testing.T) {
	text := `[{"type":"contradiction","description":"Eye color changes between chapters","location1":"Chapter 1","location2":"Chapter 3"}]`

	issues := parseConsistencyIssues(text)

	if len(issues) != 1 {
		t.Fatalf("len(issues) = %d, want 1", len(issues))
	}
	if issues[0].Type != "contradiction" {
		t.Errorf("issues[0].Type = %q, want %q", issues[0].Type, "contradiction")
	}
	if issues[0].Location2 != "Chapter 3" {
		t.Errorf("issues[0].Location2 = %q, want %q", issues[0].Location2, "Chapter 3")
	}
}

func TestParseConsistencyIssues_Garbage(t *testing.T) {
	for _, text := range []string{"", "no issues found", "{\"type\":\"x\"}", "[broken"} {
		issues := parseConsistencyIssues(text)
		if issues == nil {
			t.Fatalf("parseConsistencyIssues(%q) = nil, want empty slice", text)
		}
		if len(issues) != 0 {
			t.Errorf("parseConsistencyIssues(%q) len = %d, want 0", text, len(issues))
		}
	}
}
