package core_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pickerbot/core"
	"pickerbot/core/mocks"
)

const selfID = "bot-1"

func newBot(log zerolog.Logger) *core.Bot {
	cfg := &core.BotConfig{Trigger: core.DefaultTrigger, IgnoreBots: true}
	return core.NewBot(cfg, core.NewSelector(&sequenceRand{next: []int{0}}, log), log)
}

func newChannel(ctrl *gomock.Controller, direct bool) *mocks.MockChannel {
	ch := mocks.NewMockChannel(ctrl)
	ch.EXPECT().ID().Return("chan-1").AnyTimes()
	ch.EXPECT().IsDirect().Return(direct).AnyTimes()
	return ch
}

func message(ch core.Channel, text string) core.IncomingMessage {
	return core.IncomingMessage{
		Platform:  "test",
		MessageID: "msg-1",
		UserID:    "user-1",
		UserName:  "someone",
		Channel:   ch,
		Content:   text,
	}
}

func TestBot_HandleMessage_Ignored(t *testing.T) {
	tests := []struct {
		name   string
		direct bool
		mutate func(msg *core.IncomingMessage)
	}{
		{
			name:   "Own message",
			mutate: func(msg *core.IncomingMessage) { msg.UserID = selfID },
		},
		{
			name:   "Direct message",
			direct: true,
		},
		{
			name:   "Message from another bot",
			mutate: func(msg *core.IncomingMessage) { msg.FromBot = true },
		},
		{
			name:   "No trigger phrase",
			mutate: func(msg *core.IncomingMessage) { msg.Content = "pick someone please" },
		},
		{
			name:   "Empty message",
			mutate: func(msg *core.IncomingMessage) { msg.Content = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// Member, CanSend, Members and ReplyText are not expected: any call fails the test.
			ch := newChannel(ctrl, tt.direct)
			responder := mocks.NewMockResponder(ctrl)

			msg := message(ch, "pick! someone")
			if tt.mutate != nil {
				tt.mutate(&msg)
			}

			newBot(zerolog.Nop()).HandleMessage(context.Background(), msg, selfID, responder)
		})
	}
}

func TestBot_HandleMessage_Permissions(t *testing.T) {
	t.Run("should skip silently when the bot is not a member", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		req := require.New(t)
		var buf bytes.Buffer
		ch := newChannel(ctrl, false)
		ch.EXPECT().Member(gomock.Any(), selfID).Return(core.Member{}, false, nil)
		responder := mocks.NewMockResponder(ctrl)

		newBot(zerolog.New(&buf)).HandleMessage(context.Background(), message(ch, "pick!"), selfID, responder)

		req.NotContains(buf.String(), `"level":"error"`)
	})

	t.Run("should skip silently without send permission", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		req := require.New(t)
		var buf bytes.Buffer
		ch := newChannel(ctrl, false)
		ch.EXPECT().Member(gomock.Any(), selfID).Return(core.Member{ID: selfID}, true, nil)
		ch.EXPECT().CanSend(gomock.Any(), selfID).Return(false, nil)
		responder := mocks.NewMockResponder(ctrl)

		newBot(zerolog.New(&buf)).HandleMessage(context.Background(), message(ch, "pick!"), selfID, responder)

		req.Contains(buf.String(), `"level":"debug"`)
		req.Contains(buf.String(), "Skipping for lack of permissions")
		req.NotContains(buf.String(), `"level":"error"`)
	})

	t.Run("should log and swallow permission lookup failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		req := require.New(t)
		var buf bytes.Buffer
		ch := newChannel(ctrl, false)
		ch.EXPECT().Member(gomock.Any(), selfID).Return(core.Member{ID: selfID}, true, nil)
		ch.EXPECT().CanSend(gomock.Any(), selfID).Return(false, errors.New("missing access"))
		responder := mocks.NewMockResponder(ctrl)

		req.NotPanics(func() {
			newBot(zerolog.New(&buf)).HandleMessage(context.Background(), message(ch, "pick!"), selfID, responder)
		})
		req.Contains(buf.String(), `"level":"error"`)
		req.Contains(buf.String(), "missing access")
	})
}

func TestBot_HandleMessage_Reply(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "Trigger inside a sentence", text: "Please pick! someone"},
		{name: "Upper case trigger", text: "PICK!"},
		{name: "Mixed case trigger", text: "ok bot, PiCk! now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ch := newChannel(ctrl, false)
			ch.EXPECT().Member(gomock.Any(), selfID).Return(core.Member{ID: selfID}, true, nil)
			ch.EXPECT().CanSend(gomock.Any(), selfID).Return(true, nil)
			ch.EXPECT().Members(gomock.Any()).Return([]core.Member{
				{ID: "1", DisplayName: "Alice", Username: "alice", Discriminator: "0001"},
			}, nil)

			responder := mocks.NewMockResponder(ctrl)
			responder.EXPECT().
				ReplyText(gomock.Any(), "chan-1", "msg-1", "Alice (alice#0001)").
				Return(nil).
				Times(1)

			newBot(zerolog.Nop()).HandleMessage(context.Background(), message(ch, tt.text), selfID, responder)
		})
	}

	t.Run("should reply with the fallback for an empty roster", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ch := newChannel(ctrl, false)
		ch.EXPECT().Member(gomock.Any(), selfID).Return(core.Member{ID: selfID}, true, nil)
		ch.EXPECT().CanSend(gomock.Any(), selfID).Return(true, nil)
		ch.EXPECT().Members(gomock.Any()).Return([]core.Member{}, nil)

		responder := mocks.NewMockResponder(ctrl)
		responder.EXPECT().
			ReplyText(gomock.Any(), "chan-1", "msg-1", core.EmptyRosterReply).
			Return(nil)

		newBot(zerolog.Nop()).HandleMessage(context.Background(), message(ch, "pick!"), selfID, responder)
	})

	t.Run("should answer bots when configured to", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ch := newChannel(ctrl, false)
		ch.EXPECT().Member(gomock.Any(), selfID).Return(core.Member{ID: selfID}, true, nil)
		ch.EXPECT().CanSend(gomock.Any(), selfID).Return(true, nil)
		ch.EXPECT().Members(gomock.Any()).Return(roster, nil)

		responder := mocks.NewMockResponder(ctrl)
		responder.EXPECT().ReplyText(gomock.Any(), "chan-1", "msg-1", "Alice (alice#0001)").Return(nil)

		cfg := &core.BotConfig{IgnoreBots: false}
		bot := core.NewBot(cfg, core.NewSelector(&sequenceRand{next: []int{0}}, zerolog.Nop()), zerolog.Nop())

		msg := message(ch, "pick!")
		msg.FromBot = true
		bot.HandleMessage(context.Background(), msg, selfID, responder)
	})
}

func TestBot_HandleMessage_Failures(t *testing.T) {
	t.Run("should recover from a panicking channel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		req := require.New(t)
		var buf bytes.Buffer
		ch := newChannel(ctrl, false)
		ch.EXPECT().Member(gomock.Any(), selfID).Return(core.Member{ID: selfID}, true, nil)
		ch.EXPECT().CanSend(gomock.Any(), selfID).Return(true, nil)
		ch.EXPECT().Members(gomock.Any()).DoAndReturn(func(context.Context) ([]core.Member, error) {
			panic("roster cache corrupted")
		})
		responder := mocks.NewMockResponder(ctrl)

		req.NotPanics(func() {
			newBot(zerolog.New(&buf)).HandleMessage(context.Background(), message(ch, "pick!"), selfID, responder)
		})
		req.Contains(buf.String(), "roster cache corrupted")
	})

	t.Run("should log a failed send", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		req := require.New(t)
		var buf bytes.Buffer
		ch := newChannel(ctrl, false)
		ch.EXPECT().Member(gomock.Any(), selfID).Return(core.Member{ID: selfID}, true, nil)
		ch.EXPECT().CanSend(gomock.Any(), selfID).Return(true, nil)
		ch.EXPECT().Members(gomock.Any()).Return(roster, nil)
		responder := mocks.NewMockResponder(ctrl)
		responder.EXPECT().ReplyText(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("rate limited"))

		newBot(zerolog.New(&buf)).HandleMessage(context.Background(), message(ch, "pick!"), selfID, responder)

		req.Contains(buf.String(), `"level":"error"`)
		req.Contains(buf.String(), "rate limited")
	})
}

func TestBot_IsTrigger(t *testing.T) {
	req := require.New(t)

	custom := core.NewBot(&core.BotConfig{Trigger: "  Choose!  "}, nil, zerolog.Nop())
	req.True(custom.IsTrigger("please CHOOSE! one"))
	req.False(custom.IsTrigger("pick!"))

	def := core.NewBot(&core.BotConfig{}, nil, zerolog.Nop())
	req.True(def.IsTrigger("Pick!"))
	req.False(def.IsTrigger("pick"))
}
