package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/quoted/internal/models"
	sessionRepo "github.com/KirkDiggler/quoted/internal/repositories/session"
	"github.com/KirkDiggler/quoted/internal/services/token"
	"github.com/rs/zerolog/log"
)

// conflictBackoff is the base delay between retries of a conflicting write
const conflictBackoff = 5 * time.Millisecond

// loadSession fetches a session by token, mapping a miss to ErrSessionNotFound
func (s *service) loadSession(ctx context.Context, sessionToken string) (*models.GameSession, error) {
	session, err := s.sessionRepo.GetSessionByToken(ctx, &sessionRepo.GetSessionByTokenInput{
		Token: sessionToken,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// mutateSession applies mutate to a fresh copy of the session and writes it back at the
// versions it was read. A lost race reloads and reapplies, up to maxConflictRetries times.
// An error from mutate aborts without writing.
func (s *service) mutateSession(ctx context.Context, sessionToken string, mutate func(*models.GameSession) error) (*models.GameSession, error) {
	for attempt := 1; attempt <= s.maxConflictRetries; attempt++ {
		session, err := s.loadSession(ctx, sessionToken)
		if err != nil {
			return nil, err
		}

		expectedVersion := session.Version
		expectedAnswerVersion := session.AnswerVersion
		if err := mutate(session); err != nil {
			return nil, err
		}
		session.UpdatedAt = s.clock.Now()

		err = s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
			Session:               session,
			ExpectedVersion:       expectedVersion,
			ExpectedAnswerVersion: expectedAnswerVersion,
		})
		if err == nil {
			return session, nil
		}

		if err := s.conflictOrFail(ctx, err, sessionToken, attempt); err != nil {
			return nil, err
		}
	}

	return nil, s.giveUp(sessionToken)
}

// storeAnswer writes one participant's answer while the round is active. Answers from
// other participants do not conflict; only a round change since the read retries.
func (s *service) storeAnswer(ctx context.Context, sessionToken string, answer *models.ParticipantAnswer) (*models.GameSession, bool, error) {
	for attempt := 1; attempt <= s.maxConflictRetries; attempt++ {
		session, err := s.loadSession(ctx, sessionToken)
		if err != nil {
			return nil, false, err
		}

		if !session.Status.IsRoundActive() {
			return nil, false, ErrInvalidStateTransition
		}

		output, err := s.sessionRepo.SetAnswer(ctx, &sessionRepo.SetAnswerInput{
			SessionID:       session.ID,
			ExpectedVersion: session.Version,
			Answer:          answer,
		})
		if err == nil {
			session.SetAnswer(answer.ParticipantID, answer.Answer, answer.SubmittedAt)
			session.AnswerVersion = output.AnswerVersion
			return session, output.Replaced, nil
		}

		if err := s.conflictOrFail(ctx, err, sessionToken, attempt); err != nil {
			return nil, false, err
		}
	}

	return nil, false, s.giveUp(sessionToken)
}

// removeSession deletes the session at the version it was read and returns that copy,
// so the caller ranks exactly the scores that were deleted.
func (s *service) removeSession(ctx context.Context, sessionToken string) (*models.GameSession, error) {
	for attempt := 1; attempt <= s.maxConflictRetries; attempt++ {
		session, err := s.loadSession(ctx, sessionToken)
		if err != nil {
			return nil, err
		}

		err = s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
			SessionID:       session.ID,
			ExpectedVersion: session.Version,
		})
		if err == nil {
			return session, nil
		}

		if err := s.conflictOrFail(ctx, err, sessionToken, attempt); err != nil {
			return nil, err
		}
	}

	return nil, s.giveUp(sessionToken)
}

// conflictOrFail returns nil after waiting out a version conflict, so the caller retries.
// Any other repository error is returned mapped to a service error.
func (s *service) conflictOrFail(ctx context.Context, err error, sessionToken string, attempt int) error {
	switch {
	case errors.Is(err, sessionRepo.ErrVersionConflict):
		log.Debug().
			Str("session_token", sessionToken).
			Int("attempt", attempt).
			Msg("Session changed while saving, retrying")
	case errors.Is(err, sessionRepo.ErrSessionNotFound):
		return ErrSessionNotFound
	default:
		return fmt.Errorf("failed to save session: %w", err)
	}

	if attempt == s.maxConflictRetries {
		return nil
	}
	return s.backoff(ctx, attempt)
}

// backoff sleeps a growing, jittered delay so contending writers spread out
func (s *service) backoff(ctx context.Context, attempt int) error {
	delay := time.Duration(attempt)*conflictBackoff + time.Duration(s.random.Intn(int(conflictBackoff)))

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *service) giveUp(sessionToken string) error {
	log.Warn().
		Str("session_token", sessionToken).
		Int("attempts", s.maxConflictRetries).
		Msg("Giving up on contended session")

	return ErrConcurrencyConflict
}

// createSession assigns a token and stores a new session. A token claimed by another
// session between generation and insert is replaced by a fresh one.
func (s *service) createSession(ctx context.Context, session *models.GameSession) error {
	for attempt := 1; attempt <= s.maxConflictRetries; attempt++ {
		tok, err := s.tokenGenerator.Generate(ctx, &token.GenerateInput{
			Exists: s.tokenExists,
		})
		if err != nil {
			if errors.Is(err, token.ErrExhausted) {
				return ErrTokenExhausted
			}
			return fmt.Errorf("failed to generate session token: %w", err)
		}

		session.Token = tok
		err = s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{
			Session: session,
		})
		if err == nil {
			return nil
		}

		if !errors.Is(err, sessionRepo.ErrTokenTaken) {
			return fmt.Errorf("failed to create session: %w", err)
		}

		log.Debug().
			Str("tenant_id", session.TenantID).
			Int("attempt", attempt).
			Msg("Session token taken during insert, retrying")
	}

	return ErrTokenExhausted
}

func (s *service) tokenExists(ctx context.Context, tok string) (bool, error) {
	return s.sessionRepo.TokenExists(ctx, &sessionRepo.TokenExistsInput{Token: tok})
}
