// Package bot is the Discord command surface: it registers the three slash
// commands and hands /vx invocations to the relay service.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/embebot/embebot/internal/config"
	"github.com/embebot/embebot/internal/relay"
	"github.com/embebot/embebot/internal/rewrite"
)

// invalidURLReply is the bot's answer to any URL it does not serve.
const invalidURLReply = "URL tan invalida como vos."

// Bot owns the Discord session. Created with New, torn down when Run returns.
type Bot struct {
	session *discordgo.Session
	relay   *relay.Service
	cfg     config.DiscordConfig
	logger  *slog.Logger

	// ctx set by Run; cancel aborts in-flight relays on shutdown.
	ctx context.Context
}

// New creates the bot and wires its event handlers. The session is not opened
// until Run.
func New(cfg config.DiscordConfig, relaySvc *relay.Service, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		session: session,
		relay:   relaySvc,
		cfg:     cfg,
		logger:  logger,
		ctx:     context.Background(),
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	session.AddHandler(b.onMessage)
	return b, nil
}

// Run opens the gateway connection and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	<-ctx.Done()
	b.logger.Info("closing Discord session")
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, _ *discordgo.Ready) {
	appID := s.State.User.ID
	b.logger.Info("bot is ready",
		"user", s.State.User.Username,
		"invite_url", fmt.Sprintf("https://discord.com/api/oauth2/authorize?client_id=%s&scope=bot+applications.commands", appID),
	)

	// Guild-scoped registration syncs instantly; global takes up to an hour.
	synced, err := s.ApplicationCommandBulkOverwrite(appID, b.cfg.GuildID, commands())
	if err != nil {
		b.logger.Error("failed to sync commands", "error", err)
		return
	}
	b.logger.Info("commands synced", "count", len(synced))
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	url := stringOption(data, "url")
	b.logger.Info("command invoked",
		"command", data.Name,
		"user", invokerName(i),
		"url", url,
	)

	switch data.Name {
	case "vx":
		b.relay.Relay(b.ctx, url, &interactionResponder{session: s, interaction: i.Interaction})
	case "ig":
		b.handleRewrite(s, i, rewrite.Instagram, url)
	case "rx":
		b.handleRewrite(s, i, rewrite.Reddit, url)
	}
}

// handleRewrite answers /ig and /rx: a public message with the rewritten URL,
// or an ephemeral insult when the URL is not from the expected service.
func (b *Bot) handleRewrite(s *discordgo.Session, i *discordgo.InteractionCreate, rule rewrite.Rule, url string) {
	rewritten, ok := rule.Apply(url)
	if !ok {
		b.logger.Warn("rewrite rejected", "rule", rule.Name, "url", url)
		b.respond(s, i, invalidURLReply, true)
		return
	}
	b.logger.Info("url rewritten", "rule", rule.Name, "from", url, "to", rewritten)
	b.respond(s, i, rewritten, false)
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, msg string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: msg}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.logger.Error("failed to respond to interaction", "error", err)
	}
}

// onMessage answers when someone mentions the bot.
func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			if _, err := s.ChannelMessageSend(m.ChannelID, "Warap"); err != nil {
				b.logger.Error("failed to send mention reply", "error", err)
			}
			return
		}
	}
}

// commands defines the slash commands synced on startup.
func commands() []*discordgo.ApplicationCommand {
	urlOption := func(desc string) []*discordgo.ApplicationCommandOption {
		return []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "url",
			Description: desc,
			Required:    true,
		}}
	}
	return []*discordgo.ApplicationCommand{
		{
			Name:        "vx",
			Description: "Descarga y envía el video de Twitter/X con información del autor.",
			Options:     urlOption("La URL de Twitter/X del video a descargar"),
		},
		{
			Name:        "ig",
			Description: "Reemplaza la URL de Instagram con la URL de KKInstagram para el embed de Discord.",
			Options:     urlOption("La URL de Instagram que se va a reemplazar"),
		},
		{
			Name:        "rx",
			Description: "Reemplaza la URL de Reddit con la URL de RXReddit para el embed de Discord.",
			Options:     urlOption("La URL de Reddit que se va a reemplazar"),
		},
	}
}

// stringOption returns the named string option, or "" when absent.
func stringOption(data discordgo.ApplicationCommandInteractionData, name string) string {
	for _, opt := range data.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

func invokerName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return "unknown"
}
