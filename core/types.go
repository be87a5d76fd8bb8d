//go:generate go run go.uber.org/mock/mockgen -source=types.go -destination=mocks/mock_types.go -package=mocks
package core

import "context"

type IncomingMessage struct {
	Platform  string
	MessageID string
	UserID    string
	UserName  string
	FromBot   bool
	Channel   Channel
	Content   string
}

// Member is a read-only entry of a channel roster.
type Member struct {
	ID            string
	DisplayName   string
	Username      string
	Discriminator string
}

// String renders the member as "displayName (username#discriminator)".
// The "#discriminator" suffix is dropped when the platform has none.
func (m Member) String() string {
	if m.Discriminator == "" {
		return m.DisplayName + " (" + m.Username + ")"
	}
	return m.DisplayName + " (" + m.Username + "#" + m.Discriminator + ")"
}

// Channel is the platform's view of the conversation a message arrived in.
// Lookups may hit the network, so every method takes a context.
type Channel interface {
	ID() string
	IsDirect() bool
	// Members returns the roster of the group owning the channel.
	Members(ctx context.Context) ([]Member, error)
	// Member resolves a single roster entry; ok is false when the user is not a member.
	Member(ctx context.Context, userID string) (member Member, ok bool, err error)
	CanSend(ctx context.Context, userID string) (bool, error)
}

type Responder interface {
	ReplyText(ctx context.Context, chatID string, originalMsgID string, text string) error
}
