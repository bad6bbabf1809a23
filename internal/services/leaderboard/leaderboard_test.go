package leaderboard

import (
	"testing"
	"time"

	"github.com/KirkDiggler/quoted/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundResult(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	session := &models.GameSession{
		Round:            2,
		CorrectAuthor:    "Alice",
		AcceptedAliases:  []string{"Al"},
		CurrentStatement: "I never said that",
		Answers: []*models.ParticipantAnswer{
			{ParticipantID: "p1", Answer: "alice", SubmittedAt: at},
			{ParticipantID: "p2", Answer: "Bob", SubmittedAt: at},
			{ParticipantID: "p3", Answer: " AL ", SubmittedAt: at},
		},
	}

	result := RoundResult(session)

	assert.Equal(t, 2, result.Round)
	assert.Equal(t, "Alice", result.CorrectAuthor)
	assert.Equal(t, "I never said that", result.Statement)
	assert.Equal(t, 2, result.CorrectCount)
	require.Len(t, result.Answers, 3)
	assert.Equal(t, &models.AnswerResult{ParticipantID: "p1", Answer: "alice", Correct: true}, result.Answers[0])
	assert.Equal(t, &models.AnswerResult{ParticipantID: "p2", Answer: "Bob", Correct: false}, result.Answers[1])
	assert.True(t, result.Answers[2].Correct)
}

func TestRoundResultWithoutAnswers(t *testing.T) {
	result := RoundResult(&models.GameSession{Round: 1, CorrectAuthor: "Alice"})

	assert.Equal(t, 0, result.CorrectCount)
	assert.NotNil(t, result.Answers)
	assert.Empty(t, result.Answers)
}

func TestFinalResult(t *testing.T) {
	tests := []struct {
		name   string
		scores []*models.ParticipantScore
		want   []*models.Ranking
	}{
		{
			name: "no scores",
			want: []*models.Ranking{},
		},
		{
			name: "descending order",
			scores: []*models.ParticipantScore{
				{ParticipantID: "p1", Score: 1},
				{ParticipantID: "p2", Score: 3},
				{ParticipantID: "p3", Score: 2},
			},
			want: []*models.Ranking{
				{Rank: 1, ParticipantID: "p2", Score: 3},
				{Rank: 2, ParticipantID: "p3", Score: 2},
				{Rank: 3, ParticipantID: "p1", Score: 1},
			},
		},
		{
			name: "ties share a rank and keep entry order",
			scores: []*models.ParticipantScore{
				{ParticipantID: "p1", Score: 2},
				{ParticipantID: "p2", Score: 1},
				{ParticipantID: "p3", Score: 2},
				{ParticipantID: "p4", Score: 1},
			},
			want: []*models.Ranking{
				{Rank: 1, ParticipantID: "p1", Score: 2},
				{Rank: 1, ParticipantID: "p3", Score: 2},
				{Rank: 3, ParticipantID: "p2", Score: 1},
				{Rank: 3, ParticipantID: "p4", Score: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FinalResult(&models.GameSession{Round: 4, Scores: tt.scores})

			assert.Equal(t, 4, result.Rounds)
			assert.Equal(t, tt.want, result.Rankings)
		})
	}
}

func TestFinalResultNilSession(t *testing.T) {
	result := FinalResult(nil)

	assert.Equal(t, 0, result.Rounds)
	assert.Empty(t, result.Rankings)
}
