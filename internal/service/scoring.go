package service

import (
	"math"
	"quizroom_backend/internal/model"
)

// 每题作答上限 30 秒，正确答案按剩余时间线性加成：
// t=0 时 +90，t=30 时 +0
const (
	MaxAnswerSeconds = 30
	bonusPerSecond   = 3
)

var basePoints = map[string]int{
	model.DifficultyEasy:   100,
	model.DifficultyMedium: 150,
	model.DifficultyHard:   200,
}

// ClampTimeSpent 把客户端上报的耗时夹到 [0, 30] 并保留两位小数，
// 迟到或畸形的值不能产生负加成或虚高加成
func ClampTimeSpent(timeSpent float64) float64 {
	if math.IsNaN(timeSpent) || timeSpent < 0 {
		timeSpent = 0
	}
	if timeSpent > MaxAnswerSeconds {
		timeSpent = MaxAnswerSeconds
	}
	return math.Round(timeSpent*100) / 100
}

// TimeBonus 剩余时间加成，入参先过 ClampTimeSpent
func TimeBonus(timeSpent float64) int {
	t := ClampTimeSpent(timeSpent)
	bonus := int(math.Floor((MaxAnswerSeconds - t) * bonusPerSecond))
	if bonus < 0 {
		return 0
	}
	return bonus
}

// CalculatePoints 基础分（按难度）+ 时间加成，答错为 0
func CalculatePoints(difficulty string, timeSpent float64, isCorrect bool) int {
	if !isCorrect {
		return 0
	}
	return basePoints[difficulty] + TimeBonus(timeSpent)
}
