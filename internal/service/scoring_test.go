package service

import (
	"quizroom_backend/internal/model"
	"testing"
)

func TestCalculatePointsIncorrectAlwaysZero(t *testing.T) {
	for _, d := range []string{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		for _, timeSpent := range []float64{-5, 0, 12.34, 30, 999} {
			if got := CalculatePoints(d, timeSpent, false); got != 0 {
				t.Errorf("CalculatePoints(%s, %v, false) = %d, want 0", d, timeSpent, got)
			}
		}
	}
}

func TestCalculatePointsByDifficulty(t *testing.T) {
	cases := []struct {
		difficulty string
		timeSpent  float64
		want       int
	}{
		{model.DifficultyEasy, 0, 190},
		{model.DifficultyEasy, 5, 175},
		{model.DifficultyEasy, 30, 100},
		{model.DifficultyMedium, 5, 225},
		{model.DifficultyMedium, 30, 150},
		{model.DifficultyHard, 5, 275},
		{model.DifficultyHard, 30, 200},
	}
	for _, tc := range cases {
		if got := CalculatePoints(tc.difficulty, tc.timeSpent, true); got != tc.want {
			t.Errorf("CalculatePoints(%s, %v, true) = %d, want %d", tc.difficulty, tc.timeSpent, got, tc.want)
		}
	}
}

func TestTimeBonusBounds(t *testing.T) {
	if got := TimeBonus(0); got != 90 {
		t.Errorf("TimeBonus(0) = %d, want 90", got)
	}
	if got := TimeBonus(30); got != 0 {
		t.Errorf("TimeBonus(30) = %d, want 0", got)
	}
}

func TestTimeBonusMonotonic(t *testing.T) {
	prev := TimeBonus(0)
	for timeSpent := 0.5; timeSpent <= 30; timeSpent += 0.5 {
		cur := TimeBonus(timeSpent)
		if cur > prev {
			t.Fatalf("bonus increased from %d to %d at t=%v", prev, cur, timeSpent)
		}
		prev = cur
	}
}

func TestClampTimeSpent(t *testing.T) {
	for _, d := range []string{model.DifficultyEasy, model.DifficultyHard} {
		if CalculatePoints(d, -5, true) != CalculatePoints(d, 0, true) {
			t.Errorf("negative time should clamp to 0 for %s", d)
		}
		if CalculatePoints(d, 999, true) != CalculatePoints(d, 30, true) {
			t.Errorf("oversized time should clamp to 30 for %s", d)
		}
	}
	if got := ClampTimeSpent(5.678); got != 5.68 {
		t.Errorf("ClampTimeSpent(5.678) = %v, want 5.68", got)
	}
}
