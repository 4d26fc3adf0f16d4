package service

import (
	"testing"
	"time"

	"quizroom_backend/internal/model"
)

func attemptWith(userID uint, username, status string, score int, answers ...model.AttemptAnswer) model.QuizAttempt {
	return model.QuizAttempt{
		UserID:     userID,
		TotalScore: score,
		Status:     status,
		User:       &model.User{Username: username},
		Answers:    answers,
	}
}

func TestCompetitionRanks(t *testing.T) {
	cases := []struct {
		scores []int
		want   []int
	}{
		{[]int{300, 300, 200}, []int{1, 1, 3}},
		{[]int{500, 400, 300}, []int{1, 2, 3}},
		{[]int{100, 100, 100}, []int{1, 1, 1}},
		{[]int{400, 300, 300, 200}, []int{1, 2, 2, 4}},
		{[]int{}, []int{}},
	}
	for _, tc := range cases {
		got := competitionRanks(tc.scores)
		if len(got) != len(tc.want) {
			t.Fatalf("competitionRanks(%v) length = %d, want %d", tc.scores, len(got), len(tc.want))
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("competitionRanks(%v) = %v, want %v", tc.scores, got, tc.want)
				break
			}
		}
	}
}

func TestBuildCurrentLeaderboardCutoff(t *testing.T) {
	attempts := []model.QuizAttempt{
		attemptWith(1, "alice", model.AttemptStatusInProgress, 350,
			model.AttemptAnswer{PointsEarned: 175, IsCorrect: true, TimeSpent: 5},
			model.AttemptAnswer{PointsEarned: 175, IsCorrect: true, TimeSpent: 5},
			model.AttemptAnswer{PointsEarned: 0, IsCorrect: false, TimeSpent: 10},
		),
	}

	entries := BuildCurrentLeaderboard(attempts, 2, 1)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.QuestionsAnswered != 2 || len(e.PerQuestionScores) != 2 {
		t.Errorf("cutoff 2 should truncate breakdown, got %d answered / %d scores",
			e.QuestionsAnswered, len(e.PerQuestionScores))
	}
	if !e.IsCurrentUser {
		t.Error("requesting user's entry should carry isCurrentUser")
	}
}

func TestBuildCurrentLeaderboardIncludesAllStatuses(t *testing.T) {
	attempts := []model.QuizAttempt{
		attemptWith(1, "alice", model.AttemptStatusInProgress, 100),
		attemptWith(2, "bob", model.AttemptStatusCompleted, 300),
		attemptWith(3, "carol", model.AttemptStatusAbandoned, 200),
	}

	entries := BuildCurrentLeaderboard(attempts, 10, 0)
	if len(entries) != 3 {
		t.Fatalf("current leaderboard should include every attempt, got %d", len(entries))
	}
	if entries[0].Username != "bob" || entries[1].Username != "carol" || entries[2].Username != "alice" {
		t.Errorf("entries not sorted by score desc: %v, %v, %v",
			entries[0].Username, entries[1].Username, entries[2].Username)
	}
}

func TestBuildFinalLeaderboardExcludesInProgress(t *testing.T) {
	attempts := []model.QuizAttempt{
		attemptWith(1, "alice", model.AttemptStatusCompleted, 300),
		attemptWith(2, "bob", model.AttemptStatusInProgress, 500),
		attemptWith(3, "carol", model.AttemptStatusAbandoned, 200),
	}

	entries := BuildFinalLeaderboard(attempts, 5, 1)
	if len(entries) != 2 {
		t.Fatalf("expected 2 terminal entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.UserID == 2 {
			t.Error("in-progress attempt must not appear in final leaderboard")
		}
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("expected ranks 1,2 got %d,%d", entries[0].Rank, entries[1].Rank)
	}
}

func TestBuildFinalLeaderboardTieRanks(t *testing.T) {
	attempts := []model.QuizAttempt{
		attemptWith(1, "alice", model.AttemptStatusCompleted, 300),
		attemptWith(2, "bob", model.AttemptStatusCompleted, 300),
		attemptWith(3, "carol", model.AttemptStatusCompleted, 200),
	}

	entries := BuildFinalLeaderboard(attempts, 5, 0)
	ranks := []int{entries[0].Rank, entries[1].Rank, entries[2].Rank}
	if ranks[0] != 1 || ranks[1] != 1 || ranks[2] != 3 {
		t.Errorf("tie ranks = %v, want [1 1 3]", ranks)
	}
}

func TestBuildFinalLeaderboardAccuracy(t *testing.T) {
	now := time.Now()
	attempt := attemptWith(1, "alice", model.AttemptStatusCompleted, 275,
		model.AttemptAnswer{IsCorrect: true},
		model.AttemptAnswer{IsCorrect: true},
		model.AttemptAnswer{IsCorrect: false},
	)
	attempt.CompletedAt = &now

	entries := BuildFinalLeaderboard([]model.QuizAttempt{attempt}, 3, 1)
	if entries[0].Accuracy != 67 {
		t.Errorf("accuracy = %d, want 67", entries[0].Accuracy)
	}
	if entries[0].QuestionsAnswered != 3 || entries[0].TotalQuestions != 3 {
		t.Errorf("unexpected counts: %+v", entries[0])
	}

	empty := attemptWith(2, "bob", model.AttemptStatusAbandoned, 0)
	entries = BuildFinalLeaderboard([]model.QuizAttempt{empty}, 3, 0)
	if entries[0].Accuracy != 0 {
		t.Errorf("accuracy with no answers = %d, want 0", entries[0].Accuracy)
	}
}

// 一个 5 题房间（难度 E,E,M,H,H）全部在 5 秒内答对的端到端得分
func TestScoreAccumulationAcrossQuiz(t *testing.T) {
	difficulties := []string{
		model.DifficultyEasy, model.DifficultyEasy, model.DifficultyMedium,
		model.DifficultyHard, model.DifficultyHard,
	}

	total := 0
	for _, d := range difficulties {
		total += CalculatePoints(d, 5, true)
	}
	if total != 1125 {
		t.Errorf("all-correct total = %d, want 1125", total)
	}

	total = 0
	for i, d := range difficulties {
		total += CalculatePoints(d, 5, i != 2) // 第 3 题答错
	}
	if total != 925 {
		t.Errorf("one-wrong total = %d, want 925", total)
	}
}
