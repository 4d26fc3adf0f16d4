package service

import (
	"testing"
	"time"

	"quizroom_backend/internal/model"
)

func TestIsAbandonable(t *testing.T) {
	now := time.Now()
	threshold := 5 * time.Minute

	cases := []struct {
		name          string
		status        string
		lastHeartbeat time.Time
		want          bool
	}{
		{"stale in-progress", model.AttemptStatusInProgress, now.Add(-6 * time.Minute), true},
		{"fresh in-progress", model.AttemptStatusInProgress, now.Add(-30 * time.Second), false},
		{"heartbeat exactly at threshold", model.AttemptStatusInProgress, now.Add(-threshold), false},
		{"stale but completed", model.AttemptStatusCompleted, now.Add(-time.Hour), false},
		{"stale but abandoned", model.AttemptStatusAbandoned, now.Add(-time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &model.QuizAttempt{Status: tc.status, LastHeartbeat: tc.lastHeartbeat}
			if got := IsAbandonable(a, now, threshold); got != tc.want {
				t.Errorf("IsAbandonable = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAttemptIsTerminal(t *testing.T) {
	cases := map[string]bool{
		model.AttemptStatusInProgress: false,
		model.AttemptStatusCompleted:  true,
		model.AttemptStatusAbandoned:  true,
	}
	for status, want := range cases {
		a := &model.QuizAttempt{Status: status}
		if got := a.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", status, got, want)
		}
	}
}

// 下发给答题端的题目不能带正确答案
func TestQuestionViewOmitsCorrectAnswer(t *testing.T) {
	q := model.Question{
		Type:          model.QuestionTypeMCQ,
		Difficulty:    model.DifficultyEasy,
		Prompt:        "What is 2+2?",
		CorrectAnswer: "4",
		Order:         1,
	}
	if err := q.SetOptions([]string{"1", "2", "3", "4"}); err != nil {
		t.Fatalf("SetOptions failed: %v", err)
	}

	views := toQuestionViews([]model.Question{q})
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	v := views[0]
	if v.Question != "What is 2+2?" || v.Order != 1 {
		t.Errorf("unexpected view: %+v", v)
	}
	if len(v.Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(v.Options))
	}
}

func TestQuestionOptionsRoundTrip(t *testing.T) {
	var q model.Question
	if err := q.SetOptions(nil); err != nil {
		t.Fatalf("SetOptions(nil) failed: %v", err)
	}
	if opts := q.OptionList(); opts != nil {
		t.Errorf("true/false question should have no options, got %v", opts)
	}

	if err := q.SetOptions([]string{"a", "b", "c", "d"}); err != nil {
		t.Fatalf("SetOptions failed: %v", err)
	}
	opts := q.OptionList()
	if len(opts) != 4 || opts[0] != "a" || opts[3] != "d" {
		t.Errorf("round trip mismatch: %v", opts)
	}
}
