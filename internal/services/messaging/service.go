package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/quoted/internal/random"
	"github.com/KirkDiggler/quoted/internal/services/game"
	"github.com/KirkDiggler/quoted/internal/services/quote"
	"github.com/KirkDiggler/quoted/internal/services/tenant"
)

// service implements the Service interface
type service struct {
	random random.Source
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Random == nil {
		return nil, errors.New("random source cannot be nil")
	}

	return &service{
		random: cfg.Random,
	}, nil
}

// KindOf classifies err for user-facing messaging
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		return ErrorKindSessionGone
	case errors.Is(err, game.ErrNoQuotesAvailable):
		return ErrorKindNoQuotes
	case errors.Is(err, game.ErrInvalidStateTransition):
		return ErrorKindStaleControl
	case errors.Is(err, game.ErrConcurrencyConflict):
		return ErrorKindBusy
	case errors.Is(err, game.ErrTokenExhausted), errors.Is(err, quote.ErrTokenExhausted):
		return ErrorKindTokenExhaust
	case errors.Is(err, quote.ErrEmptyStatements), errors.Is(err, quote.ErrMissingAuthor):
		return ErrorKindInvalidQuote
	case errors.Is(err, tenant.ErrSelfFollow):
		return ErrorKindInvalidFollow
	case errors.Is(err, tenant.ErrTenantNotFound):
		return ErrorKindUnknownTenant
	case errors.Is(err, game.ErrInvalidInput), errors.Is(err, quote.ErrInvalidInput),
		errors.Is(err, tenant.ErrInvalidInput), errors.Is(err, tenant.ErrInvalidPrivacy):
		return ErrorKindInvalidInput
	default:
		return ErrorKindGeneric
	}
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	kind := KindOf(input.Err)
	output := &GetErrorMessageOutput{
		Kind:      kind,
		Tone:      tone,
		Ephemeral: true,
	}

	var messages []string
	switch kind {
	case ErrorKindSessionGone:
		output.Title = "This game no longer exists"
		messages = []string{
			"That game has ended or expired. Start a new one with /quote guess.",
			"This game wandered off. Start a fresh one with /quote guess.",
			"Nobody is playing this one anymore. Try /quote guess for a new game.",
		}
	case ErrorKindNoQuotes:
		output.Title = "Out of quotes"
		output.Ephemeral = false
		messages = []string{
			"There are no quotes left to guess. Add more with /quote add or end the game.",
			"You've seen every quote! Save some new ones with /quote add.",
			"The quote jar is empty. Time to say something memorable.",
		}
	case ErrorKindStaleControl:
		output.Title = "Too late"
		messages = []string{
			"This action is no longer available.",
			"That button has moved on without you.",
			"The round already moved on. Check the latest message.",
		}
	case ErrorKindBusy:
		output.Title = "Busy"
		messages = []string{
			"Lots happening at once! Please try that again.",
			"Everyone clicked at the same time. Give it another go.",
		}
	case ErrorKindTokenExhaust:
		output.Title = "Try again"
		messages = []string{
			"Couldn't set that up right now. Please try again.",
			"Ran out of fresh ids for a moment. Try once more.",
		}
	case ErrorKindInvalidQuote:
		output.Title = "Incomplete quote"
		messages = []string{
			"A quote needs some words and someone who said them.",
			"Who said it, and what did they say? Both are needed.",
		}
	case ErrorKindInvalidFollow:
		output.Title = "Nice try"
		messages = []string{
			"You can't follow yourself.",
			"Following yourself would be a little lonely.",
		}
	case ErrorKindUnknownTenant:
		output.Title = "Not found"
		messages = []string{
			"I don't know that server or user yet. They need to use the bot first.",
			"Couldn't find that one. Has it ever used the bot?",
		}
	case ErrorKindInvalidInput:
		output.Title = "Invalid input"
		messages = []string{
			"Something about that request doesn't look right.",
			"I couldn't make sense of that. Check the options and try again.",
		}
	default:
		output.Title = "Something went wrong"
		messages = []string{
			"Something went wrong! Try again later.",
			"Oops! The quotes got shuffled. Try again.",
			"Technical difficulties! Please try again in a moment.",
		}
	}

	output.Message = s.pick(messages)
	return output, nil
}

// GetRoundResultMessage returns a message for a finished round
func (s *service) GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error) {
	if input == nil || input.Result == nil {
		return nil, errors.New("input and result cannot be nil")
	}

	result := input.Result
	answered := len(result.Answers)

	var messages []string
	tone := ToneFunny

	switch {
	case answered == 0:
		messages = []string{
			fmt.Sprintf("Nobody guessed. It was %s!", result.CorrectAuthor),
			fmt.Sprintf("Crickets... The answer was %s.", result.CorrectAuthor),
		}
	case result.CorrectCount == answered:
		tone = ToneCelebration
		messages = []string{
			fmt.Sprintf("Everyone knew it was %s!", result.CorrectAuthor),
			fmt.Sprintf("Too easy. Of course it was %s.", result.CorrectAuthor),
		}
	case result.CorrectCount == 0:
		messages = []string{
			fmt.Sprintf("Nobody got it! It was %s all along.", result.CorrectAuthor),
			fmt.Sprintf("Stumped! The answer was %s.", result.CorrectAuthor),
		}
	default:
		tone = ToneNeutral
		messages = []string{
			fmt.Sprintf("It was %s! %d of %d got it right.", result.CorrectAuthor, result.CorrectCount, answered),
			fmt.Sprintf("The answer was %s. %d of %d guessed correctly.", result.CorrectAuthor, result.CorrectCount, answered),
		}
	}

	return &GetRoundResultMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetFinalResultMessage returns a message for an ended game
func (s *service) GetFinalResultMessage(ctx context.Context, input *GetFinalResultMessageInput) (*GetFinalResultMessageOutput, error) {
	if input == nil || input.Result == nil {
		return nil, errors.New("input and result cannot be nil")
	}

	result := input.Result
	output := &GetFinalResultMessageOutput{
		Title: "Game over",
		Tone:  ToneCelebration,
	}

	var messages []string
	switch {
	case len(result.Rankings) == 0:
		output.Tone = ToneNeutral
		messages = []string{
			fmt.Sprintf("%d round(s) played and nobody scored.", result.Rounds),
			"No points this time. Better luck next game!",
		}
	case len(result.Rankings) > 1 && result.Rankings[1].Rank == 1:
		messages = []string{
			"It's a tie at the top!",
			"Nobody could break the tie. Shared glory!",
		}
	default:
		winner := result.Rankings[0]
		messages = []string{
			fmt.Sprintf("<@%s> wins with %d point(s)!", winner.ParticipantID, winner.Score),
			fmt.Sprintf("<@%s> knows this crowd best: %d point(s).", winner.ParticipantID, winner.Score),
		}
	}

	output.Message = s.pick(messages)
	return output, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.random.Intn(len(messages))]
}
