// Package leaderboard turns game session state into round and final results.
package leaderboard

import (
	"sort"

	"github.com/KirkDiggler/quoted/internal/models"
)

// RoundResult summarizes the current round of a session.
// It reads the session only; scoring is the game engine's job.
func RoundResult(session *models.GameSession) *models.RoundResult {
	if session == nil {
		return &models.RoundResult{Answers: []*models.AnswerResult{}}
	}

	result := &models.RoundResult{
		Round:         session.Round,
		CorrectAuthor: session.CorrectAuthor,
		Statement:     session.CurrentStatement,
		Answers:       make([]*models.AnswerResult, 0, len(session.Answers)),
	}

	for _, answer := range session.Answers {
		correct := session.IsCorrect(answer.Answer)
		if correct {
			result.CorrectCount++
		}

		result.Answers = append(result.Answers, &models.AnswerResult{
			ParticipantID: answer.ParticipantID,
			Answer:        answer.Answer,
			Correct:       correct,
		})
	}

	return result
}

// FinalResult ranks the session's scores, highest first.
// Ties keep the order participants first scored in and share a rank: 1, 1, 3.
func FinalResult(session *models.GameSession) *models.FinalResult {
	if session == nil {
		return &models.FinalResult{Rankings: []*models.Ranking{}}
	}

	rankings := make([]*models.Ranking, 0, len(session.Scores))
	for _, score := range session.Scores {
		rankings = append(rankings, &models.Ranking{
			ParticipantID: score.ParticipantID,
			Score:         score.Score,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})

	for i, r := range rankings {
		if i > 0 && r.Score == rankings[i-1].Score {
			r.Rank = rankings[i-1].Rank
			continue
		}
		r.Rank = i + 1
	}

	return &models.FinalResult{
		Rounds:   session.Round,
		Rankings: rankings,
	}
}
