package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/quoted/internal/models"
	"github.com/KirkDiggler/quoted/internal/services/game"
	"github.com/KirkDiggler/quoted/internal/services/messaging"
	"github.com/KirkDiggler/quoted/internal/services/quote"
	"github.com/KirkDiggler/quoted/internal/services/tenant"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// statementSeparator splits a conversation typed into one option
const statementSeparator = "|"

// GuildInfoFunc looks up a guild's display name and member count
type GuildInfoFunc func(guildID string) (name string, memberCount int)

// QuoteCommandConfig holds the services behind /quote
type QuoteCommandConfig struct {
	GameService      game.Service
	QuoteService     quote.Service
	TenantService    tenant.Service
	MessagingService messaging.Service

	// GuildInfo is optional; without it guilds are named by their ID
	GuildInfo GuildInfoFunc
}

// QuoteCommand handles the /quote command and the guessing game components
type QuoteCommand struct {
	BaseCommand
	gameService      game.Service
	quoteService     quote.Service
	tenantService    tenant.Service
	messagingService messaging.Service
	guildInfo        GuildInfoFunc
}

// NewQuoteCommand creates a new quote command handler
func NewQuoteCommand(cfg *QuoteCommandConfig) (*QuoteCommand, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}
	if cfg.QuoteService == nil {
		return nil, errors.New("quote service cannot be nil")
	}
	if cfg.TenantService == nil {
		return nil, errors.New("tenant service cannot be nil")
	}
	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	return &QuoteCommand{
		BaseCommand: BaseCommand{
			Name:        "quote",
			Description: "Save quotes and guess who said them",
			Options:     quoteCommandOptions(),
		},
		gameService:      cfg.GameService,
		quoteService:     cfg.QuoteService,
		tenantService:    cfg.TenantService,
		messagingService: cfg.MessagingService,
		guildInfo:        cfg.GuildInfo,
	}, nil
}

func quoteCommandOptions() []*discordgo.ApplicationCommandOption {
	target := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "target",
		Description: "Server or user ID",
		Required:    true,
	}

	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "guess",
			Description: "Start a guess-who-said-it game",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "add",
			Description: "Save a quote",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "text",
					Description: "What was said; separate conversation lines with |",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "author",
					Description: "Who said it; separate conversation authors with |",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "aliases",
					Description: "Other names accepted for the first author, comma separated",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "context",
					Description: "What was going on",
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "follow",
			Description: "Read another server's or user's quotes",
			Options:     []*discordgo.ApplicationCommandOption{target},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "unfollow",
			Description: "Stop reading another server's or user's quotes",
			Options:     []*discordgo.ApplicationCommandOption{target},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "privacy",
			Description: "Choose who can read your quotes",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "level",
					Description: "Privacy level",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Public", Value: string(models.PrivacyPublic)},
						{Name: "Private", Value: string(models.PrivacyPrivate)},
						{Name: "Followers I follow back", Value: string(models.PrivacyTwoWay)},
					},
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "search",
			Description: "Find saved quotes",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "Text, author or context to look for",
					Required:    true,
				},
			},
		},
	}
}

// Handle processes a /quote interaction
func (c *QuoteCommand) Handle(ctx context.Context, i *discordgo.InteractionCreate) (*discordgo.InteractionResponse, error) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil, errors.New("not an application command")
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil, fmt.Errorf("unexpected command %q", data.Name)
	}

	tenantID, err := c.touch(ctx, i)
	if err != nil {
		return c.errorResponse(ctx, err), nil
	}

	sub := data.Options[0]
	options := subcommandOptions(sub)

	switch sub.Name {
	case "guess":
		return c.handleGuess(ctx, tenantID)
	case "add":
		return c.handleAdd(ctx, i, tenantID, options)
	case "follow":
		return c.handleFollow(ctx, tenantID, stringOption(options, "target"))
	case "unfollow":
		return c.handleUnfollow(ctx, tenantID, stringOption(options, "target"))
	case "privacy":
		return c.handlePrivacy(ctx, tenantID, stringOption(options, "level"))
	case "search":
		return c.handleSearch(ctx, tenantID, stringOption(options, "query"))
	default:
		return nil, fmt.Errorf("unknown subcommand %q", sub.Name)
	}
}

// ComponentPrefixes returns the guessing game component actions
func (c *QuoteCommand) ComponentPrefixes() []string {
	return []string{ActionGuessAnswer, ActionGuessFinish, ActionGuessNext, ActionGuessEnd}
}

// HandleComponent processes the guessing game's menu and buttons
func (c *QuoteCommand) HandleComponent(ctx context.Context, i *discordgo.InteractionCreate) (*discordgo.InteractionResponse, error) {
	if i.Type != discordgo.InteractionMessageComponent {
		return nil, errors.New("not a message component")
	}

	data := i.MessageComponentData()
	action, sessionToken := parseComponentID(data.CustomID)
	if sessionToken == "" {
		return nil, fmt.Errorf("component %q has no session token", data.CustomID)
	}

	if _, err := c.touch(ctx, i); err != nil {
		return c.errorResponse(ctx, err), nil
	}

	switch action {
	case ActionGuessAnswer:
		if len(data.Values) == 0 {
			return nil, errors.New("answer menu sent no value")
		}
		return c.handleAnswer(ctx, i, sessionToken, data.Values[0])
	case ActionGuessFinish:
		return c.handleFinish(ctx, sessionToken)
	case ActionGuessNext:
		return c.handleNext(ctx, sessionToken)
	case ActionGuessEnd:
		return c.handleEnd(ctx, sessionToken)
	default:
		return nil, fmt.Errorf("unknown component action %q", action)
	}
}

// touch records the interaction's tenant: the guild when there is one, otherwise the user
func (c *QuoteCommand) touch(ctx context.Context, i *discordgo.InteractionCreate) (string, error) {
	input := &tenant.TouchInput{}

	if i.GuildID != "" {
		input.TenantID = i.GuildID
		input.Kind = models.TenantKindGuild
		input.Name = i.GuildID
		if c.guildInfo != nil {
			name, memberCount := c.guildInfo(i.GuildID)
			if name != "" {
				input.Name = name
			}
			input.MemberCount = memberCount
		}
	} else {
		user := invoker(i)
		if user == nil {
			return "", tenant.ErrInvalidInput
		}
		input.TenantID = user.ID
		input.Kind = models.TenantKindUser
		input.Name = displayName(i)
	}

	if _, err := c.tenantService.Touch(ctx, input); err != nil {
		return "", err
	}

	return input.TenantID, nil
}

func (c *QuoteCommand) handleGuess(ctx context.Context, tenantID string) (*discordgo.InteractionResponse, error) {
	output, err := c.gameService.StartGame(ctx, &game.StartGameInput{TenantID: tenantID})
	if err != nil {
		return c.errorResponse(ctx, err), nil
	}

	return messageResponse(renderPrompt(output.Prompt)), nil
}

func (c *QuoteCommand) handleAdd(ctx context.Context, i *discordgo.InteractionCreate, tenantID string, options map[string]*discordgo.ApplicationCommandInteractionDataOption) (*discordgo.InteractionResponse, error) {
	input := &quote.CreateQuoteInput{
		TenantID:   tenantID,
		Statements: strings.Split(stringOption(options, "text"), statementSeparator),
		Context:    stringOption(options, "context"),
	}
	if user := invoker(i); user != nil {
		input.CreatorID = user.ID
	}

	for _, name := range strings.Split(stringOption(options, "author"), statementSeparator) {
		input.Authors = append(input.Authors, &models.Author{Name: name})
	}
	if aliases := stringOption(options, "aliases"); aliases != "" && len(input.Authors) > 0 {
		input.Authors[0].Aliases = strings.Split(aliases, ",")
	}

	output, err := c.quoteService.CreateQuote(ctx, input)
	if err != nil {
		return c.errorResponse(ctx, err), nil
	}

	q := output.Quote
	return messageResponse(renderNotice(
		"Quote saved",
		fmt.Sprintf("> %s\n- %s (`%s`)", strings.Join(q.Statements, "\n> "), q.PrimaryAuthor().Name, q.Token),
	)), nil
}

func (c *QuoteCommand) handleFollow(ctx context.Context, tenantID, targetID string) (*discordgo.InteractionResponse, error) {
	err := c.tenantService.Follow(ctx, &tenant.FollowInput{TenantID: tenantID, TargetID: targetID})
	if err != nil {
		return c.errorResponse(ctx, err), nil
	}

	return ephemeralResponse(renderNotice("Following", fmt.Sprintf("Now reading quotes from `%s` when they allow it.", targetID))), nil
}

func (c *QuoteCommand) handleUnfollow(ctx context.Context, tenantID, targetID string) (*discordgo.InteractionResponse, error) {
	err := c.tenantService.Unfollow(ctx, &tenant.UnfollowInput{TenantID: tenantID, TargetID: targetID})
	if err != nil {
		return c.errorResponse(ctx, err), nil
	}

	return ephemeralResponse(renderNotice("Unfollowed", fmt.Sprintf("No longer reading quotes from `%s`.", targetID))), nil
}

func (c *QuoteCommand) handlePrivacy(ctx context.Context, tenantID, level string) (*discordgo.InteractionResponse, error) {
	err := c.tenantService.SetPrivacy(ctx, &tenant.SetPrivacyInput{
		TenantID: tenantID,
		Privacy:  models.Privacy(level),
	})
	if err != nil {
		return c.errorResponse(ctx, err), nil
	}

	return ephemeralResponse(renderNotice("Privacy updated", fmt.Sprintf("Quotes are now `%s`.", level))), nil
}

func (c *QuoteCommand) handleSearch(ctx context.Context, tenantID, query string) (*discordgo.InteractionResponse, error) {
	output, err := c.quoteService.Search(ctx, &quote.SearchInput{
		TenantID: tenantID,
		Query:    query,
		Limit:    maxSearchResults,
	})
	if err != nil {
		return c.errorResponse(ctx, err), nil
	}

	return ephemeralResponse(renderQuotes(query, output.Quotes)), nil
}

func (c *QuoteCommand) handleAnswer(ctx context.Context, i *discordgo.InteractionCreate, sessionToken, answer string) (*discordgo.InteractionResponse, error) {
	user := invoker(i)
	if user == nil {
		return nil, errors.New("interaction has no user")
	}

	output, err := c.gameService.SubmitAnswer(ctx, &game.SubmitAnswerInput{
		SessionToken:  sessionToken,
		ParticipantID: user.ID,
		Answer:        answer,
	})
	if err != nil {
		return c.errorResponse(ctx, err), nil
	}

	message := fmt.Sprintf("You answered **%s**.", answer)
	if output.Replaced {
		message = fmt.Sprintf("Changed your answer to **%s**.", answer)
	}

	return ephemeralResponse(&discordgo.InteractionResponseData{Content: message}), nil
}

func (c *QuoteCommand) handleFinish(ctx context.Context, sessionToken string) (*discordgo.InteractionResponse, error) {
	output, err := c.gameService.FinishRound(ctx, &game.FinishRoundInput{SessionToken: sessionToken})
	if err != nil {
		return c.errorResponse(ctx, err), nil
	}

	flavor, err := c.messagingService.GetRoundResultMessage(ctx, &messaging.GetRoundResultMessageInput{
		Result: output.Result,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get round result message: %w", err)
	}

	return updateResponse(renderRoundResult(output, flavor.Message)), nil
}

func (c *QuoteCommand) handleNext(ctx context.Context, sessionToken string) (*discordgo.InteractionResponse, error) {
	output, err := c.gameService.NextRound(ctx, &game.NextRoundInput{SessionToken: sessionToken})
	if err != nil {
		response := c.errorResponse(ctx, err)
		if errors.Is(err, game.ErrNoQuotesAvailable) {
			// leave a way out of a game that cannot continue
			response.Data.Components = []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							Label:    "End game",
							Style:    discordgo.DangerButton,
							CustomID: componentID(ActionGuessEnd, sessionToken),
						},
					},
				},
			}
		}
		return response, nil
	}

	return messageResponse(renderPrompt(output.Prompt)), nil
}

func (c *QuoteCommand) handleEnd(ctx context.Context, sessionToken string) (*discordgo.InteractionResponse, error) {
	output, err := c.gameService.EndGame(ctx, &game.EndGameInput{SessionToken: sessionToken})
	if err != nil {
		return c.errorResponse(ctx, err), nil
	}

	flavor, err := c.messagingService.GetFinalResultMessage(ctx, &messaging.GetFinalResultMessageInput{
		Result: output.Result,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get final result message: %w", err)
	}

	return updateResponse(renderFinalResult(output.Result, flavor)), nil
}

// errorResponse turns a core error into a user-facing reply
func (c *QuoteCommand) errorResponse(ctx context.Context, err error) *discordgo.InteractionResponse {
	msg, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if msgErr != nil {
		log.Error().Err(msgErr).Msg("Failed to get error message")
		msg = &messaging.GetErrorMessageOutput{
			Kind:      messaging.ErrorKindGeneric,
			Title:     "Something went wrong",
			Message:   "Please try again later.",
			Ephemeral: true,
		}
	}

	if msg.Kind == messaging.ErrorKindGeneric {
		log.Error().Err(err).Msg("Unexpected error handling quote interaction")
	}

	if msg.Ephemeral {
		return ephemeralResponse(renderError(msg))
	}
	return messageResponse(renderError(msg))
}
