package game

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/KirkDiggler/quoted/internal/common/clock"
	"github.com/KirkDiggler/quoted/internal/common/uuid"
	"github.com/KirkDiggler/quoted/internal/models"
	"github.com/KirkDiggler/quoted/internal/random"
	sessionRepo "github.com/KirkDiggler/quoted/internal/repositories/session"
	"github.com/KirkDiggler/quoted/internal/services/leaderboard"
	"github.com/KirkDiggler/quoted/internal/services/quote"
	"github.com/KirkDiggler/quoted/internal/services/token"
	"github.com/rs/zerolog/log"
)

// service implements the Service interface
type service struct {
	sessionRepo        sessionRepo.Repository
	quoteService       quote.Service
	tokenGenerator     token.Generator
	random             random.Source
	clock              clock.Clock
	uuidGenerator      uuid.UUID
	decoyCount         int
	maxConflictRetries int
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.QuoteService == nil {
		return nil, ErrNilQuoteService
	}
	if cfg.TokenGenerator == nil {
		return nil, ErrNilTokenGenerator
	}
	if cfg.Random == nil {
		return nil, ErrNilRandom
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	decoyCount := cfg.DecoyCount
	if decoyCount <= 0 {
		decoyCount = DefaultDecoyCount
	}

	maxConflictRetries := cfg.MaxConflictRetries
	if maxConflictRetries <= 0 {
		maxConflictRetries = DefaultMaxConflictRetries
	}

	return &service{
		sessionRepo:        cfg.SessionRepo,
		quoteService:       cfg.QuoteService,
		tokenGenerator:     cfg.TokenGenerator,
		random:             cfg.Random,
		clock:              cfg.Clock,
		uuidGenerator:      cfg.UUIDGenerator,
		decoyCount:         decoyCount,
		maxConflictRetries: maxConflictRetries,
	}, nil
}

// StartGame samples a first quote for the tenant and persists a new session.
// Nothing is stored when the tenant has no eligible quote.
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil || input.TenantID == "" {
		return nil, ErrInvalidInput
	}

	now := s.clock.Now()
	session := &models.GameSession{
		ID:           s.uuidGenerator.NewUUID(),
		TenantID:     input.TenantID,
		UsedQuoteIDs: []string{},
		Scores:       []*models.ParticipantScore{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.beginRound(ctx, session); err != nil {
		return nil, err
	}

	if err := s.createSession(ctx, session); err != nil {
		return nil, err
	}

	log.Info().
		Str("tenant_id", session.TenantID).
		Str("session_token", session.Token).
		Str("quote_id", session.CurrentQuoteID).
		Msg("Game started")

	return &StartGameOutput{
		Prompt: newPrompt(session),
	}, nil
}

// SubmitAnswer stores the participant's answer for the active round
func (s *service) SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if input == nil || input.SessionToken == "" || input.ParticipantID == "" {
		return nil, ErrInvalidInput
	}

	answer := strings.TrimSpace(input.Answer)
	if answer == "" {
		return nil, ErrInvalidInput
	}

	session, replaced, err := s.storeAnswer(ctx, input.SessionToken, &models.ParticipantAnswer{
		ParticipantID: input.ParticipantID,
		Answer:        answer,
		SubmittedAt:   s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("session_token", session.Token).
		Str("participant_id", input.ParticipantID).
		Bool("replaced", replaced).
		Msg("Answer submitted")

	return &SubmitAnswerOutput{
		Prompt:   newPrompt(session),
		Replaced: replaced,
	}, nil
}

// FinishRound scores every correct answer once and closes the round.
// A round that is already finished is rejected, so a repeated call cannot score twice.
func (s *service) FinishRound(ctx context.Context, input *FinishRoundInput) (*FinishRoundOutput, error) {
	if input == nil || input.SessionToken == "" {
		return nil, ErrInvalidInput
	}

	var result *models.RoundResult
	session, err := s.mutateSession(ctx, input.SessionToken, func(session *models.GameSession) error {
		if !session.Status.IsRoundActive() {
			return ErrInvalidStateTransition
		}

		result = leaderboard.RoundResult(session)
		for _, answer := range result.Answers {
			if answer.Correct {
				session.AddPoint(answer.ParticipantID)
			}
		}

		session.MarkQuoteUsed(session.CurrentQuoteID)
		session.Status = models.SessionStatusRoundFinished
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_token", session.Token).
		Int("round", session.Round).
		Int("answers", len(result.Answers)).
		Int("correct", result.CorrectCount).
		Msg("Round finished")

	return &FinishRoundOutput{
		SessionToken: session.Token,
		Result:       result,
		Scores:       session.Scores,
	}, nil
}

// NextRound opens a new round with an unused quote, keeping the scores
func (s *service) NextRound(ctx context.Context, input *NextRoundInput) (*NextRoundOutput, error) {
	if input == nil || input.SessionToken == "" {
		return nil, ErrInvalidInput
	}

	// a conflict retry reuses the draw unless another writer changed the used quotes
	var draw *roundDraw
	session, err := s.mutateSession(ctx, input.SessionToken, func(session *models.GameSession) error {
		if !session.Status.IsRoundFinished() {
			return ErrInvalidStateTransition
		}

		if draw == nil || !slices.Equal(draw.excluded, session.UsedQuoteIDs) {
			var err error
			draw, err = s.drawRound(ctx, session.TenantID, session.UsedQuoteIDs)
			if err != nil {
				return err
			}
		}

		applyRound(session, draw)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_token", session.Token).
		Int("round", session.Round).
		Str("quote_id", session.CurrentQuoteID).
		Msg("Next round started")

	return &NextRoundOutput{
		Prompt: newPrompt(session),
	}, nil
}

// EndGame ranks the session's scores and deletes it. Valid in any round state.
func (s *service) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	if input == nil || input.SessionToken == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.removeSession(ctx, input.SessionToken)
	if err != nil {
		return nil, err
	}

	result := leaderboard.FinalResult(session)

	log.Info().
		Str("session_token", session.Token).
		Int("rounds", result.Rounds).
		Int("participants", len(result.Rankings)).
		Msg("Game ended")

	return &EndGameOutput{
		Result: result,
	}, nil
}

// GetGame returns the prompt of the session's current round
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil || input.SessionToken == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.loadSession(ctx, input.SessionToken)
	if err != nil {
		return nil, err
	}

	return &GetGameOutput{
		Prompt: newPrompt(session),
	}, nil
}

// roundDraw is a sampled quote with its shuffled answer options
type roundDraw struct {
	excluded []string
	quote    *models.Quote
	author   *models.Author
	decoys   []string
	options  []string
}

// beginRound samples an unused quote and resets the round state of session
func (s *service) beginRound(ctx context.Context, session *models.GameSession) error {
	draw, err := s.drawRound(ctx, session.TenantID, session.UsedQuoteIDs)
	if err != nil {
		return err
	}

	applyRound(session, draw)
	return nil
}

// drawRound samples a quote not in excluded and picks its decoys
func (s *service) drawRound(ctx context.Context, tenantID string, excluded []string) (*roundDraw, error) {
	sample, err := s.quoteService.SampleRandomExcluding(ctx, &quote.SampleRandomExcludingInput{
		TenantID:   tenantID,
		ExcludeIDs: excluded,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sample quote: %w", err)
	}

	q := sample.Quote
	if q == nil || q.PrimaryAuthor() == nil || len(q.Statements) == 0 {
		return nil, ErrNoQuotesAvailable
	}

	author := q.PrimaryAuthor()
	decoys, err := s.pickDecoys(ctx, tenantID, author)
	if err != nil {
		return nil, err
	}

	options := make([]string, 0, len(decoys)+1)
	options = append(options, decoys...)
	options = append(options, author.Name)
	s.random.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &roundDraw{
		excluded: append([]string{}, excluded...),
		quote:    q,
		author:   author,
		decoys:   decoys,
		options:  options,
	}, nil
}

// applyRound opens the next round of session with draw
func applyRound(session *models.GameSession, draw *roundDraw) {
	session.Round++
	session.Status = models.SessionStatusRoundActive
	session.CurrentQuoteID = draw.quote.ID
	session.CurrentStatement = draw.quote.Statements[0]
	session.CurrentContext = draw.quote.Context
	session.CorrectAuthor = draw.author.Name
	session.AcceptedAliases = append([]string{}, draw.author.Aliases...)
	session.Choices = append([]string{}, draw.decoys...)
	session.Options = append([]string{}, draw.options...)
	session.Answers = []*models.ParticipantAnswer{}
}

// pickDecoys draws up to decoyCount visible author names that would not score
func (s *service) pickDecoys(ctx context.Context, tenantID string, author *models.Author) ([]string, error) {
	names, err := s.quoteService.DistinctAuthorNames(ctx, &quote.DistinctAuthorNamesInput{
		TenantID:  tenantID,
		Excluding: author.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list author names: %w", err)
	}

	candidates := make([]string, 0, len(names.Names))
	for _, name := range names.Names {
		if !author.Matches(name) {
			candidates = append(candidates, name)
		}
	}

	s.random.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) > s.decoyCount {
		candidates = candidates[:s.decoyCount]
	}

	return candidates, nil
}

func newPrompt(session *models.GameSession) *Prompt {
	return &Prompt{
		SessionToken: session.Token,
		Round:        session.Round,
		Status:       session.Status,
		Statement:    session.CurrentStatement,
		Context:      session.CurrentContext,
		Options:      append([]string{}, session.Options...),
		AnswerCount:  len(session.Answers),
	}
}
