package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/quoted/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
		TTL:         time.Hour,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newSession() *models.GameSession {
	return &models.GameSession{
		ID:               "session-1",
		Token:            "abc123",
		TenantID:         "guild-1",
		Status:           models.SessionStatusRoundActive,
		Round:            1,
		CurrentQuoteID:   "q1",
		CurrentStatement: "hello",
		CorrectAuthor:    "Alice",
		Choices:          []string{"Bob", "Carol"},
		CreatedAt:        s.testNow,
		UpdatedAt:        s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidatesConfig() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)

	_, err = NewRedis(&Config{RedisClient: s.client, TTL: -time.Second})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetSession() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession()}))

	byID, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal("abc123", byID.Token)
	s.Equal(models.SessionStatusRoundActive, byID.Status)
	s.Equal("Alice", byID.CorrectAuthor)
	s.Equal([]string{"Bob", "Carol"}, byID.Choices)

	byToken, err := s.repo.GetSessionByToken(s.ctx, &GetSessionByTokenInput{Token: "abc123"})
	s.Require().NoError(err)
	s.Equal("session-1", byToken.ID)
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "missing"})
	s.ErrorIs(err, ErrSessionNotFound)

	_, err = s.repo.GetSessionByToken(s.ctx, &GetSessionByTokenInput{Token: "missing"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestCreateSessionDuplicateToken() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession()}))

	other := s.newSession()
	other.ID = "session-2"

	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: other})
	s.ErrorIs(err, ErrTokenTaken)

	_, err = s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-2"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestTokenExists() {
	exists, err := s.repo.TokenExists(s.ctx, &TokenExistsInput{Token: "abc123"})
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession()}))

	exists, err = s.repo.TokenExists(s.ctx, &TokenExistsInput{Token: "abc123"})
	s.Require().NoError(err)
	s.True(exists)
}

func (s *RedisRepositoryTestSuite) TestUpdateSessionAdvancesVersion() {
	session := s.newSession()
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))

	session.SetAnswer("p1", "Alice", s.testNow)
	s.Require().NoError(s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		Session:         session,
		ExpectedVersion: 0,
	}))
	s.Equal(int64(1), session.Version)

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(int64(1), stored.Version)
	answer, ok := stored.AnswerFor("p1")
	s.True(ok)
	s.Equal("Alice", answer)
}

func (s *RedisRepositoryTestSuite) TestUpdateSessionStaleVersion() {
	session := s.newSession()
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))

	first, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	second, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)

	first.SetAnswer("p1", "Alice", s.testNow)
	s.Require().NoError(s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		Session:         first,
		ExpectedVersion: 0,
	}))

	second.SetAnswer("p2", "Bob", s.testNow)
	err = s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		Session:         second,
		ExpectedVersion: 0,
	})
	s.ErrorIs(err, ErrVersionConflict)
	s.Equal(int64(0), second.Version)

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Len(stored.Answers, 1)
	s.Equal("p1", stored.Answers[0].ParticipantID)
}

func (s *RedisRepositoryTestSuite) TestUpdateSessionNotFound() {
	err := s.repo.UpdateSession(s.ctx, &UpdateSessionInput{Session: s.newSession()})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestDeleteSession() {
	session := s.newSession()
	session.SetAnswer("p1", "Alice", s.testNow)
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))

	s.Require().NoError(s.repo.DeleteSession(s.ctx, &DeleteSessionInput{SessionID: "session-1"}))

	_, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.ErrorIs(err, ErrSessionNotFound)

	exists, err := s.repo.TokenExists(s.ctx, &TokenExistsInput{Token: "abc123"})
	s.Require().NoError(err)
	s.False(exists)
	s.False(s.mr.Exists("game_session_answers:session-1"))

	err = s.repo.DeleteSession(s.ctx, &DeleteSessionInput{SessionID: "session-1"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestDeleteSessionStaleVersion() {
	session := s.newSession()
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))

	session.AddPoint("p1")
	s.Require().NoError(s.repo.UpdateSession(s.ctx, &UpdateSessionInput{Session: session}))

	err := s.repo.DeleteSession(s.ctx, &DeleteSessionInput{SessionID: "session-1", ExpectedVersion: 0})
	s.ErrorIs(err, ErrVersionConflict)

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(1, stored.ScoreFor("p1"))

	s.Require().NoError(s.repo.DeleteSession(s.ctx, &DeleteSessionInput{SessionID: "session-1", ExpectedVersion: 1}))
}

func (s *RedisRepositoryTestSuite) TestSetAnswer() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession()}))

	first, err := s.repo.SetAnswer(s.ctx, &SetAnswerInput{
		SessionID: "session-1",
		Answer:    &models.ParticipantAnswer{ParticipantID: "p1", Answer: "Bob", SubmittedAt: s.testNow},
	})
	s.Require().NoError(err)
	s.False(first.Replaced)
	s.Equal(int64(1), first.AnswerVersion)

	_, err = s.repo.SetAnswer(s.ctx, &SetAnswerInput{
		SessionID: "session-1",
		Answer:    &models.ParticipantAnswer{ParticipantID: "p2", Answer: "Alice", SubmittedAt: s.testNow.Add(time.Second)},
	})
	s.Require().NoError(err)

	replaced, err := s.repo.SetAnswer(s.ctx, &SetAnswerInput{
		SessionID: "session-1",
		Answer:    &models.ParticipantAnswer{ParticipantID: "p1", Answer: "Alice", SubmittedAt: s.testNow.Add(time.Minute)},
	})
	s.Require().NoError(err)
	s.True(replaced.Replaced)
	s.Equal(int64(3), replaced.AnswerVersion)

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(int64(0), stored.Version)
	s.Equal(int64(3), stored.AnswerVersion)
	s.Require().Len(stored.Answers, 2)
	// replacing keeps the first submission's place
	s.Equal("p1", stored.Answers[0].ParticipantID)
	s.Equal("Alice", stored.Answers[0].Answer)
	s.Equal(s.testNow, stored.Answers[0].SubmittedAt.UTC())
	s.Equal("p2", stored.Answers[1].ParticipantID)
}

func (s *RedisRepositoryTestSuite) TestSetAnswerStaleVersion() {
	session := s.newSession()
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))

	session.Status = models.SessionStatusRoundFinished
	s.Require().NoError(s.repo.UpdateSession(s.ctx, &UpdateSessionInput{Session: session}))

	_, err := s.repo.SetAnswer(s.ctx, &SetAnswerInput{
		SessionID:       "session-1",
		ExpectedVersion: 0,
		Answer:          &models.ParticipantAnswer{ParticipantID: "p1", Answer: "Alice"},
	})
	s.ErrorIs(err, ErrVersionConflict)

	_, err = s.repo.SetAnswer(s.ctx, &SetAnswerInput{
		SessionID: "missing",
		Answer:    &models.ParticipantAnswer{ParticipantID: "p1", Answer: "Alice"},
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestConcurrentAnswersDoNotConflict() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession()}))

	const participants = 20
	var wg sync.WaitGroup
	errs := make(chan error, participants)

	for i := 0; i < participants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.repo.SetAnswer(s.ctx, &SetAnswerInput{
				SessionID: "session-1",
				Answer: &models.ParticipantAnswer{
					ParticipantID: fmt.Sprintf("p%d", i),
					Answer:        "Alice",
					SubmittedAt:   s.testNow,
				},
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Len(stored.Answers, participants)
	s.Equal(int64(participants), stored.AnswerVersion)
}

func (s *RedisRepositoryTestSuite) TestUpdateSessionRejectsAnswersItHasNotSeen() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession()}))

	read, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)

	_, err = s.repo.SetAnswer(s.ctx, &SetAnswerInput{
		SessionID: "session-1",
		Answer:    &models.ParticipantAnswer{ParticipantID: "p1", Answer: "Alice", SubmittedAt: s.testNow},
	})
	s.Require().NoError(err)

	read.Status = models.SessionStatusRoundFinished
	err = s.repo.UpdateSession(s.ctx, &UpdateSessionInput{
		Session:               read,
		ExpectedVersion:       read.Version,
		ExpectedAnswerVersion: read.AnswerVersion,
	})
	s.ErrorIs(err, ErrVersionConflict)

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(models.SessionStatusRoundActive, stored.Status)
	s.Len(stored.Answers, 1)
}

func (s *RedisRepositoryTestSuite) TestUpdateSessionClearsAnswers() {
	session := s.newSession()
	session.SetAnswer("p1", "Alice", s.testNow)
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))

	session.Answers = nil
	session.Round = 2
	s.Require().NoError(s.repo.UpdateSession(s.ctx, &UpdateSessionInput{Session: session}))
	s.Equal(int64(1), session.AnswerVersion)

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(2, stored.Round)
	s.Empty(stored.Answers)
}

func (s *RedisRepositoryTestSuite) TestSessionsExpireAfterInactivity() {
	session := s.newSession()
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))

	s.mr.FastForward(45 * time.Minute)

	// a write refreshes the TTL of both keys
	s.Require().NoError(s.repo.UpdateSession(s.ctx, &UpdateSessionInput{Session: session}))

	s.mr.FastForward(45 * time.Minute)

	_, err := s.repo.GetSessionByToken(s.ctx, &GetSessionByTokenInput{Token: "abc123"})
	s.Require().NoError(err)

	s.mr.FastForward(time.Hour)

	_, err = s.repo.GetSessionByToken(s.ctx, &GetSessionByTokenInput{Token: "abc123"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestSetAnswerRefreshesExpiry() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession()}))

	s.mr.FastForward(45 * time.Minute)

	_, err := s.repo.SetAnswer(s.ctx, &SetAnswerInput{
		SessionID: "session-1",
		Answer:    &models.ParticipantAnswer{ParticipantID: "p1", Answer: "Bob", SubmittedAt: s.testNow},
	})
	s.Require().NoError(err)

	s.mr.FastForward(45 * time.Minute)

	stored, err := s.repo.GetSessionByToken(s.ctx, &GetSessionByTokenInput{Token: "abc123"})
	s.Require().NoError(err)
	s.Len(stored.Answers, 1)
	s.Equal(int64(1), stored.AnswerVersion)

	s.mr.FastForward(time.Hour)

	_, err = s.repo.GetSessionByToken(s.ctx, &GetSessionByTokenInput{Token: "abc123"})
	s.ErrorIs(err, ErrSessionNotFound)
	s.False(s.mr.Exists(answersKey("session-1")))
}
