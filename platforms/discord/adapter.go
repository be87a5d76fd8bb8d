package discord

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"pickerbot/core"
)

const maxMessageLength = 2000

type Config struct {
	Enabled bool   `toml:"enabled"`
	Token   string `toml:"token" validate:"required_if=Enabled true"`
}

type DiscordAdapter struct {
	Session *discordgo.Session
	Core    *core.Bot

	log    zerolog.Logger
	selfID atomic.Value
	// guilds present in the Ready payload; any other GuildCreate is a new join.
	known sync.Map
}

func NewDiscordAdapter(token string, coreBot *core.Bot, log zerolog.Logger) (*DiscordAdapter, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	log = log.With().Str("platform", "discord").Logger()
	useLogger(dg, log)

	return &DiscordAdapter{
		Session: dg,
		Core:    coreBot,
		log:     log,
	}, nil
}

func (da *DiscordAdapter) Start(ctx context.Context) error {
	da.Session.AddHandler(da.handleReady)
	da.Session.AddHandler(da.handleGuildCreate)
	da.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		da.handleMessage(ctx, s, m)
	})

	if err := da.Session.Open(); err != nil {
		return fmt.Errorf("error opening discord connection: %w", err)
	}

	u, err := da.Session.User("@me")
	if err != nil {
		return fmt.Errorf("error fetching self user: %w", err)
	}
	da.selfID.Store(u.ID)

	da.log.Info().Str("user", u.Username).Msg("Discord adapter started")
	return nil
}

func (da *DiscordAdapter) Close() error {
	da.log.Info().Msg("Discord adapter stopping")
	return da.Session.Close()
}

func (da *DiscordAdapter) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		da.known.Store(g.ID, struct{}{})
	}
	if r.User != nil {
		da.selfID.Store(r.User.ID)
	}
}

func (da *DiscordAdapter) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if _, existing := da.known.LoadOrStore(g.ID, struct{}{}); existing {
		da.log.Info().Str("guild_id", g.ID).Str("guild", g.Name).Msg("Logged into existing server")
	} else {
		da.log.Info().Str("guild_id", g.ID).Str("guild", g.Name).Msg("Joined new server")
	}

	// preload the member list into the state cache
	if err := s.RequestGuildMembers(g.ID, "", 0, "", false); err != nil {
		da.log.Error().Err(err).Str("guild_id", g.ID).Msg("Failed to request guild members")
	}
}

func (da *DiscordAdapter) handleMessage(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	// discordgo already runs each handler in its own goroutine
	da.Core.HandleMessage(ctx, toIncoming(s.State, m), da.BotID(), da)
}

// BotID is empty until the gateway reports the bot's own user.
func (da *DiscordAdapter) BotID() string {
	id, _ := da.selfID.Load().(string)
	return id
}

func toIncoming(state *discordgo.State, m *discordgo.MessageCreate) core.IncomingMessage {
	msg := core.IncomingMessage{
		Platform:  "discord",
		MessageID: m.ID,
		Channel:   newChannel(state, m.ChannelID, m.GuildID),
		Content:   m.Content,
	}
	if m.Author != nil {
		msg.UserID = m.Author.ID
		msg.UserName = m.Author.Username
		msg.FromBot = m.Author.Bot
	}
	return msg
}

func (da *DiscordAdapter) ReplyText(ctx context.Context, chatID string, originalMsgID string, text string) error {
	ref := &discordgo.MessageReference{
		MessageID: originalMsgID,
		ChannelID: chatID,
	}

	_, err := da.Session.ChannelMessageSendReply(chatID, truncate(text), ref, discordgo.WithContext(ctx))
	return err
}

// truncate limits text to maxMessageLength characters, cutting on a rune boundary.
func truncate(text string) string {
	if utf8.RuneCountInString(text) <= maxMessageLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxMessageLength-10]) + "..."
}

// useLogger routes discordgo's package logger into log.
func useLogger(s *discordgo.Session, log zerolog.Logger) {
	s.LogLevel = discordgo.LogWarning
	discordgo.Logger = func(msgL, caller int, format string, a ...interface{}) {
		var evt *zerolog.Event
		switch msgL {
		case discordgo.LogError:
			evt = log.Error()
		case discordgo.LogWarning:
			evt = log.Warn()
		case discordgo.LogInformational:
			evt = log.Info()
		default:
			evt = log.Debug()
		}
		evt.Str("source", "discordgo").Msgf(format, a...)
	}
}
