package matrix

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"

	"pickerbot/core"
)

// events older than this are backlog replayed by the initial sync
const maxEventAge = 2 * time.Minute

type Config struct {
	Enabled         bool   `toml:"enabled"`
	Homeserver      string `toml:"homeserver" validate:"required_if=Enabled true"`
	UserID          string `toml:"user_id" validate:"required_if=Enabled true"`
	AccessToken     string `toml:"access_token" validate:"required_if=Enabled true"`
	AutoJoinInvites bool   `toml:"auto_join_invites"`
}

type MatrixAdapter struct {
	Client   *mautrix.Client
	Core     *core.Bot
	AutoJoin bool

	log  zerolog.Logger
	self id.UserID

	mu sync.RWMutex
	// rooms listed in the account's m.direct data
	direct map[id.RoomID]struct{}
	// rooms the bot was invited to with is_direct set
	invitedDirect map[id.RoomID]struct{}
}

func NewMatrixAdapter(cfg Config, coreBot *core.Bot, log zerolog.Logger) (*MatrixAdapter, error) {
	client, err := mautrix.NewClient(cfg.Homeserver, id.UserID(cfg.UserID), cfg.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	log = log.With().Str("platform", "matrix").Logger()
	client.Log = log

	return &MatrixAdapter{
		Client:   client,
		Core:     coreBot,
		AutoJoin: cfg.AutoJoinInvites,
		log:      log,
		self:     client.UserID,

		direct:        make(map[id.RoomID]struct{}),
		invitedDirect: make(map[id.RoomID]struct{}),
	}, nil
}

// Start registers the handlers and runs the sync loop in the background until
// ctx is done or Close is called.
func (ma *MatrixAdapter) Start(ctx context.Context) error {
	syncer, ok := ma.Client.Syncer.(*mautrix.DefaultSyncer)
	if !ok {
		return errors.New("unsupported matrix syncer")
	}

	syncer.OnEventType(event.EventMessage, ma.handleEvent)
	syncer.OnEventType(event.StateMember, ma.handleInvite)
	syncer.OnEventType(event.AccountDataDirectChats, ma.handleDirectChats)

	ma.log.Info().Str("user", ma.Client.UserID.String()).Msg("Starting Matrix adapter")
	go func() {
		if err := ma.Client.SyncWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
			ma.log.Error().Err(err).Msg("Matrix sync stopped")
		}
	}()
	return nil
}

func (ma *MatrixAdapter) Close() error {
	ma.log.Info().Msg("Matrix adapter stopping")
	ma.Client.StopSync()
	return nil
}

func (ma *MatrixAdapter) handleInvite(ctx context.Context, evt *event.Event) {
	state := evt.Content.AsMember()
	isForMe := evt.GetStateKey() == ma.self.String()
	if state.Membership != event.MembershipInvite || !isForMe {
		return
	}

	// only the inviter's m.direct lists the room, so remember the flag ourselves
	if state.IsDirect {
		ma.mu.Lock()
		ma.invitedDirect[evt.RoomID] = struct{}{}
		ma.mu.Unlock()
	}

	if ma.AutoJoin {
		ma.log.Info().Str("inviter", evt.Sender.String()).Str("room", evt.RoomID.String()).Msg("Received invite, joining")

		if _, err := ma.Client.JoinRoom(ctx, evt.RoomID.String(), nil); err != nil {
			ma.log.Error().Err(err).Str("room", evt.RoomID.String()).Msg("Failed to join room")
			return
		}
		ma.log.Info().Str("room", evt.RoomID.String()).Msg("Joined new room")
	}
}

func (ma *MatrixAdapter) handleDirectChats(ctx context.Context, evt *event.Event) {
	content, ok := evt.Content.Parsed.(*event.DirectChatsEventContent)
	if !ok {
		return
	}
	ma.setDirectRooms(*content)
}

func (ma *MatrixAdapter) setDirectRooms(content event.DirectChatsEventContent) {
	direct := make(map[id.RoomID]struct{})
	for _, rooms := range content {
		for _, roomID := range rooms {
			direct[roomID] = struct{}{}
		}
	}

	ma.mu.Lock()
	ma.direct = direct
	ma.mu.Unlock()
}

func (ma *MatrixAdapter) isDirect(roomID id.RoomID) bool {
	ma.mu.RLock()
	defer ma.mu.RUnlock()
	if _, ok := ma.direct[roomID]; ok {
		return true
	}
	_, ok := ma.invitedDirect[roomID]
	return ok
}

func (ma *MatrixAdapter) handleEvent(ctx context.Context, evt *event.Event) {
	if time.Since(time.UnixMilli(evt.Timestamp)) > maxEventAge {
		return
	}

	msgContent, ok := evt.Content.Parsed.(*event.MessageEventContent)
	if !ok {
		return
	}

	go ma.Core.HandleMessage(ctx, ma.toIncoming(evt, msgContent), ma.self.String(), ma)
}

func (ma *MatrixAdapter) toIncoming(evt *event.Event, content *event.MessageEventContent) core.IncomingMessage {
	return core.IncomingMessage{
		Platform:  "matrix",
		MessageID: evt.ID.String(),
		UserID:    evt.Sender.String(),
		UserName:  evt.Sender.String(),
		// bots conventionally talk in m.notice
		FromBot: content.MsgType == event.MsgNotice,
		Channel: newRoom(ma.Client, evt.RoomID, ma.isDirect(evt.RoomID)),
		Content: content.Body,
	}
}

func (ma *MatrixAdapter) ReplyText(ctx context.Context, chatID string, originalMsgID string, text string) error {
	_, err := ma.Client.SendMessageEvent(ctx, id.RoomID(chatID), event.EventMessage, &event.MessageEventContent{
		MsgType: event.MsgText,
		Body:    text,
		RelatesTo: &event.RelatesTo{
			InReplyTo: &event.InReplyTo{
				EventID: id.EventID(originalMsgID),
			},
		},
	})
	return err
}
