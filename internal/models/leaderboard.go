package models

// AnswerResult is a participant's answer in a finished round
type AnswerResult struct {
	ParticipantID string
	Answer        string
	Correct       bool
}

// RoundResult summarizes one finished round
type RoundResult struct {
	// Round is the round number within the session
	Round int

	// CorrectAuthor is the answer that scored
	CorrectAuthor string

	// Statement is the quote text that was guessed
	Statement string

	// Answers contains every participant's answer in submission order
	Answers []*AnswerResult

	// CorrectCount is how many participants answered correctly
	CorrectCount int
}

// Ranking is one row of the final leaderboard
type Ranking struct {
	// Rank is 1-based; equal scores share a rank
	Rank int

	ParticipantID string
	Score         int
}

// FinalResult is the leaderboard of an ended session
type FinalResult struct {
	// Rounds is how many rounds were played
	Rounds int

	// Rankings is sorted by score, highest first
	Rankings []*Ranking
}
