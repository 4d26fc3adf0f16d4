package service

import (
	"strings"
	"testing"
)

const validGenerated = `[
  {"type":"MCQ","difficulty":"Easy","question":"What does HTTP stand for?","options":["HyperText Transfer Protocol","High Transfer Text Protocol","Hyperlink Text Protocol","Host Transfer Protocol"],"correctAnswer":"HyperText Transfer Protocol"},
  {"type":"TRUE_FALSE","difficulty":"Hard","question":"TCP guarantees ordered delivery.","options":[],"correctAnswer":"True"}
]`

func TestParseGeneratedQuestions(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		questions, err := ParseGeneratedQuestions(validGenerated)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(questions) != 2 {
			t.Fatalf("expected 2 questions, got %d", len(questions))
		}
		if questions[0].Type != "MCQ" || questions[1].Type != "TRUE_FALSE" {
			t.Errorf("unexpected types: %s, %s", questions[0].Type, questions[1].Type)
		}
	})

	t.Run("fenced array", func(t *testing.T) {
		fenced := "```json\n" + validGenerated + "\n```"
		questions, err := ParseGeneratedQuestions(fenced)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(questions) != 2 {
			t.Fatalf("expected 2 questions, got %d", len(questions))
		}
	})

	t.Run("array surrounded by prose", func(t *testing.T) {
		noisy := "Here are your questions:\n" + validGenerated + "\nEnjoy!"
		if _, err := ParseGeneratedQuestions(noisy); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no array", func(t *testing.T) {
		if _, err := ParseGeneratedQuestions("I cannot generate questions right now."); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("empty array", func(t *testing.T) {
		if _, err := ParseGeneratedQuestions("[]"); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("MCQ with wrong option count", func(t *testing.T) {
		bad := `[{"type":"MCQ","difficulty":"Easy","question":"Pick one","options":["A","B"],"correctAnswer":"A"}]`
		_, err := ParseGeneratedQuestions(bad)
		if err == nil || !strings.Contains(err.Error(), "options") {
			t.Fatalf("expected an option-count error, got %v", err)
		}
	})

	t.Run("answer not among options", func(t *testing.T) {
		bad := `[{"type":"MCQ","difficulty":"Easy","question":"Pick one","options":["A","B","C","D"],"correctAnswer":"E"}]`
		if _, err := ParseGeneratedQuestions(bad); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("invalid true/false answer", func(t *testing.T) {
		bad := `[{"type":"TRUE_FALSE","difficulty":"Medium","question":"Is water wet?","options":[],"correctAnswer":"Yes"}]`
		if _, err := ParseGeneratedQuestions(bad); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bare", `[1,2]`, `[1,2]`},
		{"fenced", "```json\n[1,2]\n```", `[1,2]`},
		{"prose around", "sure: [1,2] done", `[1,2]`},
		{"nothing", "no array here", ""},
		{"reversed brackets", "] oops [", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONArray(tt.content); got != tt.want {
				t.Errorf("extractJSONArray(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
