package bot

import (
	"context"
	"io"

	"github.com/bwmarrin/discordgo"

	"github.com/embebot/embebot/internal/domain"
)

// twitterBlue is the embed accent color.
const twitterBlue = 0x1DA1F2

// interactionResponder adapts one slash-command interaction to the
// relay.Responder interface. Before the response is deferred, errors go out
// as the interaction response itself; afterwards they become ephemeral
// follow-ups.
type interactionResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
	deferred    bool
}

func (r *interactionResponder) Defer(_ context.Context) error {
	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err == nil {
		r.deferred = true
	}
	return err
}

func (r *interactionResponder) Ephemeral(_ context.Context, msg string) error {
	if r.deferred {
		_, err := r.session.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return err
	}
	return r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (r *interactionResponder) SendVideo(_ context.Context, sum domain.Summary, filename string, media io.Reader) error {
	_, err := r.session.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{buildEmbed(sum)},
		Files: []*discordgo.File{{
			Name:        filename,
			ContentType: "video/mp4",
			Reader:      media,
		}},
	})
	return err
}

// buildEmbed renders a Summary the way Twitter cards look in Discord.
func buildEmbed(sum domain.Summary) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Description: sum.Description,
		Color:       twitterBlue,
		Footer:      &discordgo.MessageEmbedFooter{Text: sum.Footer},
	}
	if sum.AuthorName != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    sum.AuthorLine(),
			IconURL: sum.AvatarURL,
		}
	}
	return embed
}
