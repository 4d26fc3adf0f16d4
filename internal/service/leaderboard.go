package service

import (
	"math"
	"sort"
	"time"

	"quizroom_backend/internal/model"
)

// QuestionScore 当前排行榜里单题的得分明细
type QuestionScore struct {
	PointsEarned int     `json:"pointsEarned"`
	IsCorrect    bool    `json:"isCorrect"`
	TimeSpent    float64 `json:"timeSpent"`
}

// CurrentEntry 进行中排行榜条目，包含截断到当前题号的明细
type CurrentEntry struct {
	UserID            uint            `json:"userId"`
	Username          string          `json:"username"`
	IsCurrentUser     bool            `json:"isCurrentUser"`
	Rank              int             `json:"rank"`
	TotalScore        int             `json:"totalScore"`
	TotalTime         float64         `json:"totalTime"`
	Status            string          `json:"status"`
	QuestionsAnswered int             `json:"questionsAnswered"`
	PerQuestionScores []QuestionScore `json:"perQuestionScores"`
}

// FinalEntry 最终排行榜条目
type FinalEntry struct {
	UserID            uint       `json:"userId"`
	Username          string     `json:"username"`
	IsCurrentUser     bool       `json:"isCurrentUser"`
	Rank              int        `json:"rank"`
	TotalScore        int        `json:"totalScore"`
	TotalTime         float64    `json:"totalTime"`
	Accuracy          int        `json:"accuracy"`
	QuestionsAnswered int        `json:"questionsAnswered"`
	TotalQuestions    int        `json:"totalQuestions"`
	Status            string     `json:"status"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
}

// competitionRanks 标准竞赛排名：并列同名次，下一个不同分数的名次跳号。
// 入参按得分降序排列。
func competitionRanks(scores []int) []int {
	ranks := make([]int, len(scores))
	currentRank := 1
	for i := range scores {
		if i > 0 && scores[i] < scores[i-1] {
			currentRank = i + 1
		}
		ranks[i] = currentRank
	}
	return ranks
}

func attemptUsername(a *model.QuizAttempt) string {
	if a.User != nil {
		return a.User.Username
	}
	return ""
}

// BuildCurrentLeaderboard 不区分状态纳入房间内所有答题记录，
// 答案明细截断到 cutoff 题
func BuildCurrentLeaderboard(attempts []model.QuizAttempt, cutoff int, currentUserID uint) []CurrentEntry {
	entries := make([]CurrentEntry, 0, len(attempts))
	for i := range attempts {
		a := &attempts[i]

		answered := a.Answers
		if cutoff >= 0 && cutoff < len(answered) {
			answered = answered[:cutoff]
		}

		scores := make([]QuestionScore, 0, len(answered))
		for _, ans := range answered {
			scores = append(scores, QuestionScore{
				PointsEarned: ans.PointsEarned,
				IsCorrect:    ans.IsCorrect,
				TimeSpent:    ans.TimeSpent,
			})
		}

		entries = append(entries, CurrentEntry{
			UserID:            a.UserID,
			Username:          attemptUsername(a),
			IsCurrentUser:     a.UserID == currentUserID,
			TotalScore:        a.TotalScore,
			TotalTime:         a.TotalTime,
			Status:            a.Status,
			QuestionsAnswered: len(answered),
			PerQuestionScores: scores,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore > entries[j].TotalScore
	})
	scores := make([]int, len(entries))
	for i := range entries {
		scores[i] = entries[i].TotalScore
	}
	for i, rank := range competitionRanks(scores) {
		entries[i].Rank = rank
	}
	return entries
}

// BuildFinalLeaderboard 只纳入终态（completed / abandoned）的记录，
// 中途退出但还在答题的用户不出现在最终榜上
func BuildFinalLeaderboard(attempts []model.QuizAttempt, totalQuestions int, currentUserID uint) []FinalEntry {
	entries := make([]FinalEntry, 0, len(attempts))
	for i := range attempts {
		a := &attempts[i]
		if !a.IsTerminal() {
			continue
		}

		accuracy := 0
		if len(a.Answers) > 0 {
			correct := 0
			for _, ans := range a.Answers {
				if ans.IsCorrect {
					correct++
				}
			}
			accuracy = int(math.Round(float64(correct) / float64(len(a.Answers)) * 100))
		}

		entries = append(entries, FinalEntry{
			UserID:            a.UserID,
			Username:          attemptUsername(a),
			IsCurrentUser:     a.UserID == currentUserID,
			TotalScore:        a.TotalScore,
			TotalTime:         a.TotalTime,
			Accuracy:          accuracy,
			QuestionsAnswered: len(a.Answers),
			TotalQuestions:    totalQuestions,
			Status:            a.Status,
			CompletedAt:       a.CompletedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore > entries[j].TotalScore
	})
	scores := make([]int, len(entries))
	for i := range entries {
		scores[i] = entries[i].TotalScore
	}
	for i, rank := range competitionRanks(scores) {
		entries[i].Rank = rank
	}
	return entries
}
