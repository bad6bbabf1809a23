package models

import (
	"strings"
	"time"
)

// SessionStatus represents where a game session is in its round lifecycle
type SessionStatus string

const (
	// SessionStatusRoundActive indicates a quote is shown and answers are being collected
	SessionStatusRoundActive SessionStatus = "round_active"

	// SessionStatusRoundFinished indicates the current round has been scored
	SessionStatusRoundFinished SessionStatus = "round_finished"
)

// IsRoundActive returns true if answers are being collected
func (s SessionStatus) IsRoundActive() bool {
	return s == SessionStatusRoundActive
}

// IsRoundFinished returns true if the current round has been scored
func (s SessionStatus) IsRoundFinished() bool {
	return s == SessionStatusRoundFinished
}

// ParticipantAnswer is one participant's answer for the active round
type ParticipantAnswer struct {
	ParticipantID string
	Answer        string

	// SubmittedAt is the participant's first answer this round; replacing keeps it
	SubmittedAt time.Time
}

// ParticipantScore is a participant's correct-answer count across the session
type ParticipantScore struct {
	ParticipantID string
	Score         int
}

// GameSession is a guessing game played by a tenant.
// A deleted session is the terminal state; there is no "ended" status.
type GameSession struct {
	// ID is the internal record identifier
	ID string

	// Token is the short shareable identifier carried by UI controls
	Token string

	// TenantID is the tenant that started the game
	TenantID string

	// Status is the round lifecycle state
	Status SessionStatus

	// Round counts rounds started in this session, starting at 1
	Round int

	// UsedQuoteIDs are quotes already shown; entries are never removed
	UsedQuoteIDs []string

	// CurrentQuoteID is the quote of the active or just-finished round
	CurrentQuoteID string

	// CurrentStatement is the text shown for the current round
	CurrentStatement string

	// CurrentContext is the optional context of the current quote
	CurrentContext string

	// CorrectAuthor is the display name of the correct answer
	CorrectAuthor string

	// AcceptedAliases are other spellings accepted as correct
	AcceptedAliases []string

	// Choices are the decoy author names offered with the correct one
	Choices []string

	// Options are the decoys plus the correct author in display order.
	// Shuffled once per round so re-rendered prompts keep the same layout.
	Options []string

	// Answers holds at most one entry per participant for the current round
	Answers []*ParticipantAnswer

	// Scores holds cumulative correct answers per participant
	Scores []*ParticipantScore

	// Version increases on every successful write of the session document
	Version int64

	// AnswerVersion increases whenever an answer is stored. Answers are written
	// per participant without touching Version.
	AnswerVersion int64

	// CreatedAt is when the session was started
	CreatedAt time.Time

	// UpdatedAt is when the session was last written
	UpdatedAt time.Time
}

// SetAnswer records or replaces the participant's answer.
// Returns true if a previous answer was replaced.
func (s *GameSession) SetAnswer(participantID, answer string, at time.Time) bool {
	for _, a := range s.Answers {
		if a.ParticipantID == participantID {
			a.Answer = answer
			return true
		}
	}

	s.Answers = append(s.Answers, &ParticipantAnswer{
		ParticipantID: participantID,
		Answer:        answer,
		SubmittedAt:   at,
	})
	return false
}

// AnswerFor returns the participant's answer in the current round
func (s *GameSession) AnswerFor(participantID string) (string, bool) {
	for _, a := range s.Answers {
		if a.ParticipantID == participantID {
			return a.Answer, true
		}
	}
	return "", false
}

// ScoreFor returns the participant's cumulative score
func (s *GameSession) ScoreFor(participantID string) int {
	for _, sc := range s.Scores {
		if sc.ParticipantID == participantID {
			return sc.Score
		}
	}
	return 0
}

// AddPoint increments the participant's score, creating the entry when needed
func (s *GameSession) AddPoint(participantID string) {
	for _, sc := range s.Scores {
		if sc.ParticipantID == participantID {
			sc.Score++
			return
		}
	}

	s.Scores = append(s.Scores, &ParticipantScore{
		ParticipantID: participantID,
		Score:         1,
	})
}

// IsCorrect reports whether answer matches the correct author or an accepted alias
func (s *GameSession) IsCorrect(answer string) bool {
	author := &Author{Name: s.CorrectAuthor, Aliases: s.AcceptedAliases}
	return author.Matches(answer)
}

// HasUsedQuote reports whether quoteID was already shown in this session
func (s *GameSession) HasUsedQuote(quoteID string) bool {
	for _, id := range s.UsedQuoteIDs {
		if id == quoteID {
			return true
		}
	}
	return false
}

// MarkQuoteUsed adds quoteID to the used set
func (s *GameSession) MarkQuoteUsed(quoteID string) {
	if quoteID == "" || s.HasUsedQuote(quoteID) {
		return
	}
	s.UsedQuoteIDs = append(s.UsedQuoteIDs, quoteID)
}

// IsChoice reports whether answer is one of the offered names, the correct one included
func (s *GameSession) IsChoice(answer string) bool {
	answer = strings.TrimSpace(answer)
	if strings.EqualFold(answer, s.CorrectAuthor) {
		return true
	}
	for _, c := range s.Choices {
		if strings.EqualFold(answer, c) {
			return true
		}
	}
	return false
}
