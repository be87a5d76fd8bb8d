package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const DefaultTrigger = "pick!"

type BotConfig struct {
	Trigger    string `toml:"trigger"`
	IgnoreBots bool   `toml:"ignore_bots"`
}

// Bot routes inbound messages: it decides whether a message is a trigger and,
// if so, replies with a randomly picked member of the channel.
type Bot struct {
	Config   *BotConfig
	Selector *Selector
	log      zerolog.Logger
	trigger  string
}

func NewBot(cfg *BotConfig, selector *Selector, log zerolog.Logger) *Bot {
	trigger := strings.ToLower(strings.TrimSpace(cfg.Trigger))
	if trigger == "" {
		trigger = DefaultTrigger
	}

	return &Bot{
		Config:   cfg,
		Selector: selector,
		log:      log.With().Str("component", "router").Logger(),
		trigger:  trigger,
	}
}

// HandleMessage sends at most one reply for msg. It never panics and never
// returns an error: failures are logged and the message is dropped.
func (b *Bot) HandleMessage(ctx context.Context, msg IncomingMessage, self string, responder Responder) {
	log := b.log.With().
		Str("platform", msg.Platform).
		Str("message_id", msg.MessageID).
		Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Unhandled panic in message handler")
		}
	}()

	if err := b.handle(ctx, msg, self, responder, log); err != nil {
		log.Error().Err(err).Msg("Unhandled error in message handler")
	}
}

func (b *Bot) handle(ctx context.Context, msg IncomingMessage, self string, responder Responder, log zerolog.Logger) error {
	// never answer ourselves
	if msg.UserID == self {
		return nil
	}

	if msg.Channel == nil || msg.Channel.IsDirect() {
		return nil
	}

	if msg.FromBot && b.Config.IgnoreBots {
		return nil
	}

	if !b.IsTrigger(msg.Content) {
		return nil
	}

	log.Debug().Str("user", msg.UserName).Str("channel", msg.Channel.ID()).Msg("Invoked")

	if _, ok, err := msg.Channel.Member(ctx, self); err != nil {
		return fmt.Errorf("failed to resolve own membership: %w", err)
	} else if !ok {
		log.Debug().Msg("Skipping, not a member of the channel")
		return nil
	}

	canSend, err := msg.Channel.CanSend(ctx, self)
	if err != nil {
		return fmt.Errorf("failed to check send permission: %w", err)
	}
	if !canSend {
		log.Debug().Msg("Skipping for lack of permissions")
		return nil
	}

	response, err := b.Selector.Select(ctx, msg.Channel)
	if err != nil {
		return err
	}

	if err := responder.ReplyText(ctx, msg.Channel.ID(), msg.MessageID, response); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// IsTrigger reports whether text contains the trigger phrase, ignoring case.
func (b *Bot) IsTrigger(text string) bool {
	return strings.Contains(strings.ToLower(text), b.trigger)
}
