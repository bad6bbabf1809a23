package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/quoted/internal/models"
	"github.com/KirkDiggler/quoted/internal/services/game"
	"github.com/KirkDiggler/quoted/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// Component actions; the session token follows after a colon
const (
	ActionGuessAnswer = "guess_answer"
	ActionGuessFinish = "guess_finish"
	ActionGuessNext   = "guess_next"
	ActionGuessEnd    = "guess_end"
)

const (
	colorPrompt  = 0x5865f2
	colorResult  = 0x00ff00
	colorError   = 0xff0000
	colorNeutral = 0x99aab5

	// maxSearchResults keeps search replies within an embed's field limit
	maxSearchResults = 10
)

// renderPrompt renders the question of the current round with its answer menu
func renderPrompt(prompt *game.Prompt) *discordgo.InteractionResponseData {
	description := fmt.Sprintf("> %s", prompt.Statement)
	if prompt.Context != "" {
		description += fmt.Sprintf("\n*%s*", prompt.Context)
	}

	options := make([]discordgo.SelectMenuOption, 0, len(prompt.Options))
	for _, name := range prompt.Options {
		options = append(options, discordgo.SelectMenuOption{
			Label: name,
			Value: name,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Who said it? (round %d)", prompt.Round),
		Description: description,
		Color:       colorPrompt,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d answer(s) so far · game %s", prompt.AnswerCount, prompt.SessionToken),
		},
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						CustomID:    componentID(ActionGuessAnswer, prompt.SessionToken),
						Placeholder: "Pick who said it",
						Options:     options,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Reveal",
						Style:    discordgo.PrimaryButton,
						CustomID: componentID(ActionGuessFinish, prompt.SessionToken),
					},
					discordgo.Button{
						Label:    "End game",
						Style:    discordgo.DangerButton,
						CustomID: componentID(ActionGuessEnd, prompt.SessionToken),
					},
				},
			},
		},
	}
}

// renderRoundResult renders a finished round with controls for the next one
func renderRoundResult(output *game.FinishRoundOutput, flavor string) *discordgo.InteractionResponseData {
	result := output.Result

	var answers strings.Builder
	for _, answer := range result.Answers {
		mark := "❌"
		if answer.Correct {
			mark = "✅"
		}
		fmt.Fprintf(&answers, "%s <@%s>: %s\n", mark, answer.ParticipantID, answer.Answer)
	}
	if answers.Len() == 0 {
		answers.WriteString("No answers")
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Round %d: it was %s", result.Round, result.CorrectAuthor),
		Description: fmt.Sprintf("> %s\n\n%s", result.Statement, flavor),
		Color:       colorResult,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Answers", Value: answers.String()},
			{Name: "Scores", Value: renderScores(output.Scores)},
		},
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{nextRoundControls(output.SessionToken)},
	}
}

func nextRoundControls(sessionToken string) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Next quote",
				Style:    discordgo.PrimaryButton,
				CustomID: componentID(ActionGuessNext, sessionToken),
			},
			discordgo.Button{
				Label:    "End game",
				Style:    discordgo.DangerButton,
				CustomID: componentID(ActionGuessEnd, sessionToken),
			},
		},
	}
}

func renderScores(scores []*models.ParticipantScore) string {
	if len(scores) == 0 {
		return "Nobody has scored yet"
	}

	var sb strings.Builder
	for _, score := range scores {
		fmt.Fprintf(&sb, "<@%s>: %d\n", score.ParticipantID, score.Score)
	}
	return sb.String()
}

// renderFinalResult renders the leaderboard of an ended game without controls
func renderFinalResult(result *models.FinalResult, flavor *messaging.GetFinalResultMessageOutput) *discordgo.InteractionResponseData {
	var sb strings.Builder
	for _, r := range result.Rankings {
		fmt.Fprintf(&sb, "**#%d** <@%s>: %d\n", r.Rank, r.ParticipantID, r.Score)
	}
	if sb.Len() == 0 {
		sb.WriteString("No points scored")
	}

	embed := &discordgo.MessageEmbed{
		Title:       flavor.Title,
		Description: flavor.Message,
		Color:       colorResult,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Leaderboard", Value: sb.String()},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d round(s) played", result.Rounds),
		},
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{},
	}
}

// renderError renders a user-facing error
func renderError(msg *messaging.GetErrorMessageOutput) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       msg.Title,
				Description: msg.Message,
				Color:       colorError,
			},
		},
	}
}

// renderQuotes renders search results
func renderQuotes(query string, quotes []*models.Quote) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Quotes matching %q", query),
		Color: colorNeutral,
	}

	if len(quotes) == 0 {
		embed.Description = "Nothing found"
	}

	for _, q := range quotes {
		names := make([]string, 0, len(q.Authors))
		for _, a := range q.Authors {
			names = append(names, a.Name)
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s · %s", q.Token, strings.Join(names, ", ")),
			Value: strings.Join(q.Statements, "\n"),
		})
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
}

// renderNotice renders a short confirmation
func renderNotice(title, message string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       title,
				Description: message,
				Color:       colorNeutral,
			},
		},
	}
}
