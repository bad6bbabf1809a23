package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// interactionTimeout bounds the work behind one interaction; Discord expects a reply within 3s
const interactionTimeout = 3 * time.Second

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	components []ComponentHandler
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Commands are registered on Start
	Commands []CommandHandler
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if len(cfg.Commands) == 0 {
		return nil, errors.New("at least one command is required")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
	}

	for _, cmd := range cfg.Commands {
		bot.commands[cmd.GetName()] = cmd
		if components, ok := cmd.(ComponentHandler); ok {
			bot.components = append(bot.components, components)
		}
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// GuildInfo reports a guild's name and member count from the session state cache
func (b *Bot) GuildInfo(guildID string) (string, int) {
	guild, err := b.session.State.Guild(guildID)
	if err != nil {
		return "", 0
	}
	return guild.Name, guild.MemberCount
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	for _, cmd := range b.commands {
		if err := b.registerCommand(cmd); err != nil {
			return err
		}
	}

	log.Info().Msg("Bot is now running")
	return nil
}

// Stop removes registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Warn().Err(err).Str("command", cmdName).Str("command_id", cmdID).Msg("Failed to delete command")
			continue
		}
		log.Info().Str("command", cmdName).Str("command_id", cmdID).Msg("Deleted command")
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// registerCommand registers a command with Discord, on the dev guild when one is configured
func (b *Bot) registerCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Info().
		Str("command", cmd.GetName()).
		Str("command_id", createdCmd.ID).
		Str("guild_id", b.config.GuildID).
		Msg("Registered command")

	return nil
}

// handleInteraction routes an interaction to its handler and sends the response
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	response, err := b.route(ctx, i)
	if err != nil {
		log.Error().Err(err).Str("interaction_id", i.ID).Msg("Error handling interaction")
		response = ephemeralResponse(&discordgo.InteractionResponseData{
			Content: "Something went wrong handling that.",
		})
	}
	if response == nil {
		return
	}

	if err := s.InteractionRespond(i.Interaction, response); err != nil {
		log.Error().Err(err).Str("interaction_id", i.ID).Msg("Failed to respond to interaction")
	}
}

// route finds the handler for an interaction
func (b *Bot) route(ctx context.Context, i *discordgo.InteractionCreate) (*discordgo.InteractionResponse, error) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		h, ok := b.commands[name]
		if !ok {
			return nil, fmt.Errorf("unknown command %q", name)
		}
		return h.Handle(ctx, i)

	case discordgo.InteractionMessageComponent:
		action, _ := parseComponentID(i.MessageComponentData().CustomID)
		for _, h := range b.components {
			for _, prefix := range h.ComponentPrefixes() {
				if strings.EqualFold(prefix, action) {
					return h.HandleComponent(ctx, i)
				}
			}
		}
		return nil, fmt.Errorf("unknown component %q", i.MessageComponentData().CustomID)
	}

	return nil, nil
}
