package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/KirkDiggler/quoted/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix       = "game_session:"
	sessionTokenKeyPrefix  = "game_session_token:"
	answersKeyPrefix       = "game_session_answers:"
	answerVersionKeyPrefix = "game_session_answer_version:"
)

var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrTokenTaken is returned when another session already holds the token
	ErrTokenTaken = errors.New("session token already taken")

	// ErrVersionConflict is returned when the session changed since it was read
	ErrVersionConflict = errors.New("session version conflict")
)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// TTL expires sessions after this much inactivity; zero keeps them forever
	TTL time.Duration
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if cfg.TTL < 0 {
		return nil, errors.New("ttl cannot be negative")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
		ttl:    cfg.TTL,
	}, nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func tokenKey(token string) string {
	return sessionTokenKeyPrefix + token
}

// answersKey holds one hash field per participant so answers never rewrite the session
func answersKey(id string) string {
	return answersKeyPrefix + id
}

func answerVersionKey(id string) string {
	return answerVersionKeyPrefix + id
}

// CreateSession claims the session token and stores the session
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	session := input.Session
	if session.ID == "" || session.Token == "" {
		return errors.New("session ID and token cannot be empty")
	}

	sessionJSON, err := encodeSession(session, session.Version)
	if err != nil {
		return err
	}

	answerFields, err := encodeAnswers(session.Answers)
	if err != nil {
		return err
	}

	claimed, err := r.client.SetNX(ctx, tokenKey(session.Token), session.ID, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to claim session token: %w", err)
	}
	if !claimed {
		return ErrTokenTaken
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(session.ID), sessionJSON, r.ttl)
		r.writeAnswers(ctx, pipe, session.ID, answerFields)
		pipe.Set(ctx, answerVersionKey(session.ID), session.AnswerVersion, r.ttl)
		return nil
	})
	if err != nil {
		r.client.Del(ctx, tokenKey(session.Token))
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID with the answers of its current round
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.GameSession, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	// read the document and its answers in one MULTI so they are a consistent snapshot
	pipe := r.client.TxPipeline()
	sessionCmd := pipe.Get(ctx, sessionKey(input.SessionID))
	answersCmd := pipe.HGetAll(ctx, answersKey(input.SessionID))
	versionCmd := pipe.Get(ctx, answerVersionKey(input.SessionID))

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	sessionJSON, err := sessionCmd.Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session, err := decodeSession(sessionJSON)
	if err != nil {
		return nil, err
	}

	session.Answers, err = decodeAnswers(answersCmd.Val())
	if err != nil {
		return nil, err
	}

	session.AnswerVersion, err = versionValue(versionCmd)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// GetSessionByToken resolves the token index and retrieves the session
func (r *redisRepository) GetSessionByToken(ctx context.Context, input *GetSessionByTokenInput) (*models.GameSession, error) {
	if input == nil || input.Token == "" {
		return nil, errors.New("input and token cannot be empty")
	}

	sessionID, err := r.client.Get(ctx, tokenKey(input.Token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session ID for token: %w", err)
	}

	return r.GetSession(ctx, &GetSessionInput{
		SessionID: sessionID,
	})
}

// UpdateSession writes the session and replaces its answers under WATCH, so neither a
// concurrent session write nor an answer stored since the caller's read can be lost.
// On success the session's Version and AnswerVersion are advanced to the stored values.
func (r *redisRepository) UpdateSession(ctx context.Context, input *UpdateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	session := input.Session
	if session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	nextVersion := input.ExpectedVersion + 1
	nextAnswerVersion := input.ExpectedAnswerVersion + 1

	sessionJSON, err := encodeSession(session, nextVersion)
	if err != nil {
		return err
	}

	answerFields, err := encodeAnswers(session.Answers)
	if err != nil {
		return err
	}

	txf := func(tx *redis.Tx) error {
		current, err := r.currentSession(ctx, tx, session.ID)
		if err != nil {
			return err
		}
		if current.Version != input.ExpectedVersion {
			return ErrVersionConflict
		}

		answerVersion, err := versionValue(tx.Get(ctx, answerVersionKey(session.ID)))
		if err != nil {
			return err
		}
		if answerVersion != input.ExpectedAnswerVersion {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sessionKey(session.ID), sessionJSON, r.ttl)
			r.writeAnswers(ctx, pipe, session.ID, answerFields)
			pipe.Set(ctx, answerVersionKey(session.ID), nextAnswerVersion, r.ttl)
			if r.ttl > 0 {
				pipe.Expire(ctx, tokenKey(session.Token), r.ttl)
			}
			return nil
		})
		return err
	}

	err = r.client.Watch(ctx, txf, sessionKey(session.ID), answersKey(session.ID), answerVersionKey(session.ID))
	if err := watchError(err, "update session"); err != nil {
		return err
	}

	session.Version = nextVersion
	session.AnswerVersion = nextAnswerVersion

	return nil
}

// setAnswerScript stores one answer if the session document is still at the expected
// version. It runs atomically and watches nothing, so answers from different participants
// never conflict. A replaced answer keeps its first SubmittedAt.
//
// KEYS: session, answers, answer version. ARGV: expected version, participant, answer
// JSON, TTL in ms, token key prefix. Returns {status, replaced, answer version}.
var setAnswerScript = redis.NewScript(`
local raw = redis.call('GET', KEYS[1])
if not raw then
	return {1, 0, 0}
end

local session = cjson.decode(raw)
if tonumber(session.Version) ~= tonumber(ARGV[1]) then
	return {2, 0, 0}
end

local answer = ARGV[3]
local replaced = 0
local previous = redis.call('HGET', KEYS[2], ARGV[2])
if previous then
	local updated = cjson.decode(answer)
	updated.SubmittedAt = cjson.decode(previous).SubmittedAt
	answer = cjson.encode(updated)
	replaced = 1
end

redis.call('HSET', KEYS[2], ARGV[2], answer)
local version = redis.call('INCR', KEYS[3])

local ttl = tonumber(ARGV[4])
if ttl > 0 then
	redis.call('PEXPIRE', KEYS[1], ttl)
	redis.call('PEXPIRE', KEYS[2], ttl)
	redis.call('PEXPIRE', KEYS[3], ttl)
	redis.call('PEXPIRE', ARGV[5] .. session.Token, ttl)
end

return {0, replaced, version}
`)

const (
	setAnswerStored   = 0
	setAnswerNotFound = 1
	setAnswerConflict = 2
)

// SetAnswer adds or replaces one participant's answer and refreshes the session's TTL
func (r *redisRepository) SetAnswer(ctx context.Context, input *SetAnswerInput) (*SetAnswerOutput, error) {
	if input == nil || input.SessionID == "" || input.Answer == nil || input.Answer.ParticipantID == "" {
		return nil, errors.New("input, session ID and participant cannot be empty")
	}

	answerJSON, err := json.Marshal(input.Answer)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answer: %w", err)
	}

	keys := []string{
		sessionKey(input.SessionID),
		answersKey(input.SessionID),
		answerVersionKey(input.SessionID),
	}

	result, err := setAnswerScript.Run(ctx, r.client, keys,
		input.ExpectedVersion,
		input.Answer.ParticipantID,
		string(answerJSON),
		r.ttl.Milliseconds(),
		sessionTokenKeyPrefix,
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to set answer: %w", err)
	}
	if len(result) != 3 {
		return nil, fmt.Errorf("unexpected set answer reply %v", result)
	}

	switch result[0] {
	case setAnswerStored:
		return &SetAnswerOutput{
			Replaced:      result[1] == 1,
			AnswerVersion: result[2],
		}, nil
	case setAnswerNotFound:
		return nil, ErrSessionNotFound
	case setAnswerConflict:
		return nil, ErrVersionConflict
	default:
		return nil, fmt.Errorf("unexpected set answer status %d", result[0])
	}
}

// DeleteSession removes a session, its answers and its token index
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	key := sessionKey(input.SessionID)

	txf := func(tx *redis.Tx) error {
		current, err := r.currentSession(ctx, tx, input.SessionID)
		if err != nil {
			return err
		}
		if current.Version != input.ExpectedVersion {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key, answersKey(input.SessionID), answerVersionKey(input.SessionID))
			pipe.Del(ctx, tokenKey(current.Token))
			return nil
		})
		return err
	}

	return watchError(r.client.Watch(ctx, txf, key), "delete session")
}

// TokenExists reports whether the token is claimed by a live session
func (r *redisRepository) TokenExists(ctx context.Context, input *TokenExistsInput) (bool, error) {
	if input == nil || input.Token == "" {
		return false, errors.New("input and token cannot be empty")
	}

	n, err := r.client.Exists(ctx, tokenKey(input.Token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session token: %w", err)
	}

	return n > 0, nil
}

// currentSession reads the session document inside a WATCH transaction
func (r *redisRepository) currentSession(ctx context.Context, tx *redis.Tx, sessionID string) (*models.GameSession, error) {
	sessionJSON, err := tx.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	return decodeSession(sessionJSON)
}

// writeAnswers replaces the answers hash with fields
func (r *redisRepository) writeAnswers(ctx context.Context, pipe redis.Pipeliner, sessionID string, fields map[string]interface{}) {
	key := answersKey(sessionID)
	pipe.Del(ctx, key)
	if len(fields) == 0 {
		return
	}

	pipe.HSet(ctx, key, fields)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
}

// watchError maps the outcome of a WATCH transaction to repository errors
func watchError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.TxFailedErr):
		return ErrVersionConflict
	case errors.Is(err, ErrVersionConflict), errors.Is(err, ErrSessionNotFound):
		return err
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

// encodeSession marshals the session document at version. Answers live in their own hash.
func encodeSession(session *models.GameSession, version int64) ([]byte, error) {
	stored := *session
	stored.Version = version
	stored.Answers = nil
	stored.AnswerVersion = 0

	sessionJSON, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return sessionJSON, nil
}

func decodeSession(sessionJSON string) (*models.GameSession, error) {
	var session models.GameSession
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func encodeAnswers(answers []*models.ParticipantAnswer) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, len(answers))
	for _, answer := range answers {
		answerJSON, err := json.Marshal(answer)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal answer: %w", err)
		}
		fields[answer.ParticipantID] = string(answerJSON)
	}
	return fields, nil
}

// decodeAnswers returns the answers in submission order
func decodeAnswers(fields map[string]string) ([]*models.ParticipantAnswer, error) {
	answers := make([]*models.ParticipantAnswer, 0, len(fields))
	for _, answerJSON := range fields {
		var answer models.ParticipantAnswer
		if err := json.Unmarshal([]byte(answerJSON), &answer); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answer: %w", err)
		}
		answers = append(answers, &answer)
	}

	sort.Slice(answers, func(i, j int) bool {
		if !answers[i].SubmittedAt.Equal(answers[j].SubmittedAt) {
			return answers[i].SubmittedAt.Before(answers[j].SubmittedAt)
		}
		return answers[i].ParticipantID < answers[j].ParticipantID
	})

	return answers, nil
}

// versionValue reads a counter, treating a missing key as zero
func versionValue(cmd *redis.StringCmd) (int64, error) {
	v, err := cmd.Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read answer version: %w", err)
	}
	return v, nil
}
