package matrix

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"

	"pickerbot/core"
)

// roomClient is the part of *mautrix.Client a room needs.
type roomClient interface {
	JoinedMembers(ctx context.Context, roomID id.RoomID) (*mautrix.RespJoinedMembers, error)
	StateEvent(ctx context.Context, roomID id.RoomID, eventType event.Type, stateKey string, outContent interface{}) error
}

type room struct {
	client roomClient
	roomID id.RoomID
	direct bool
}

func newRoom(client roomClient, roomID id.RoomID, direct bool) *room {
	return &room{
		client: client,
		roomID: roomID,
		direct: direct,
	}
}

func (r *room) ID() string {
	return r.roomID.String()
}

func (r *room) IsDirect() bool {
	return r.direct
}

func (r *room) Members(ctx context.Context) ([]core.Member, error) {
	resp, err := r.client.JoinedMembers(ctx, r.roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch joined members: %w", err)
	}

	members := lo.MapToSlice(resp.Joined, toMember)
	// map order is random; keep the roster stable between calls
	slices.SortFunc(members, func(a, b core.Member) int {
		return strings.Compare(a.ID, b.ID)
	})
	return members, nil
}

func (r *room) Member(ctx context.Context, userID string) (core.Member, bool, error) {
	resp, err := r.client.JoinedMembers(ctx, r.roomID)
	if err != nil {
		return core.Member{}, false, fmt.Errorf("failed to fetch joined members: %w", err)
	}

	joined, ok := resp.Joined[id.UserID(userID)]
	if !ok {
		return core.Member{}, false, nil
	}
	return toMember(id.UserID(userID), joined), true, nil
}

func (r *room) CanSend(ctx context.Context, userID string) (bool, error) {
	var pl event.PowerLevelsEventContent
	err := r.client.StateEvent(ctx, r.roomID, event.StatePowerLevels, "", &pl)
	if errors.Is(err, mautrix.MNotFound) {
		// without power levels every member may send
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to fetch power levels: %w", err)
	}
	return pl.GetUserLevel(id.UserID(userID)) >= pl.GetEventLevel(event.EventMessage), nil
}

func toMember(userID id.UserID, joined mautrix.JoinedMember) core.Member {
	name := joined.DisplayName
	if name == "" {
		localpart, _, err := userID.Parse()
		if err != nil || localpart == "" {
			localpart = userID.String()
		}
		name = localpart
	}

	return core.Member{
		ID:          userID.String(),
		DisplayName: name,
		Username:    userID.String(),
	}
}
