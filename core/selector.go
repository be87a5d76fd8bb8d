package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

const EmptyRosterReply = "What? There is no one here!"

type Selector struct {
	rand Rand
	log  zerolog.Logger
}

func NewSelector(r Rand, log zerolog.Logger) *Selector {
	return &Selector{
		rand: r,
		log:  log.With().Str("component", "selector").Logger(),
	}
}

// Select picks one roster member uniformly at random and formats it for a reply.
// An empty roster is not an error: it yields EmptyRosterReply.
func (s *Selector) Select(ctx context.Context, ch Channel) (string, error) {
	members, err := ch.Members(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load members of %s: %w", ch.ID(), err)
	}

	if len(members) == 0 {
		s.log.Error().Str("channel", ch.ID()).Msg("member list is empty")
		return EmptyRosterReply, nil
	}

	return members[s.rand.IntN(len(members))].String(), nil
}
