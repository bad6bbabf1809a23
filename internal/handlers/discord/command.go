package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CommandHandler defines the interface for Discord command handlers.
// Handlers build the response; the bot sends it.
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a slash command interaction
	Handle(ctx context.Context, i *discordgo.InteractionCreate) (*discordgo.InteractionResponse, error)
}

// ComponentHandler handles message components whose custom ID starts with one of its prefixes
type ComponentHandler interface {
	// ComponentPrefixes returns the custom ID prefixes this handler owns
	ComponentPrefixes() []string

	// HandleComponent processes a button click or select menu choice
	HandleComponent(ctx context.Context, i *discordgo.InteractionCreate) (*discordgo.InteractionResponse, error)
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// customIDSeparator splits a component action from the session token it targets
const customIDSeparator = ":"

// componentID builds a custom ID such as guess_finish:abc123
func componentID(action, token string) string {
	return action + customIDSeparator + token
}

// parseComponentID splits a custom ID into its action and token
func parseComponentID(customID string) (action, token string) {
	action, token, _ = strings.Cut(customID, customIDSeparator)
	return action, token
}

// invoker returns the user behind an interaction, in a guild or a DM
func invoker(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// displayName prefers the guild nickname
func displayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.Nick != "" {
		return i.Member.Nick
	}
	if user := invoker(i); user != nil {
		if user.GlobalName != "" {
			return user.GlobalName
		}
		return user.Username
	}
	return ""
}

// subcommandOptions indexes a subcommand's options by name
func subcommandOptions(opt *discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opt.Options))
	for _, o := range opt.Options {
		options[o.Name] = o
	}
	return options
}

func stringOption(options map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if o, ok := options[name]; ok {
		return strings.TrimSpace(o.StringValue())
	}
	return ""
}

// messageResponse sends a new message visible to the channel
func messageResponse(data *discordgo.InteractionResponseData) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

// ephemeralResponse sends a new message only the invoker can see
func ephemeralResponse(data *discordgo.InteractionResponseData) *discordgo.InteractionResponse {
	data.Flags |= discordgo.MessageFlagsEphemeral
	return messageResponse(data)
}

// updateResponse edits the message the component belongs to
func updateResponse(data *discordgo.InteractionResponseData) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	}
}
