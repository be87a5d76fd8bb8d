package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"

	"pickerbot/core"
)

// channel answers roster and permission queries from the session state cache.
type channel struct {
	state     *discordgo.State
	channelID string
	guildID   string
}

func newChannel(state *discordgo.State, channelID, guildID string) *channel {
	return &channel{
		state:     state,
		channelID: channelID,
		guildID:   guildID,
	}
}

func (c *channel) ID() string {
	return c.channelID
}

func (c *channel) IsDirect() bool {
	if c.guildID == "" {
		return true
	}

	ch, err := c.state.Channel(c.channelID)
	if err != nil {
		return false
	}
	return ch.Type == discordgo.ChannelTypeDM || ch.Type == discordgo.ChannelTypeGroupDM
}

func (c *channel) Members(ctx context.Context) ([]core.Member, error) {
	guild, err := c.state.Guild(c.guildID)
	if err != nil {
		return nil, fmt.Errorf("guild %s not in state: %w", c.guildID, err)
	}

	c.state.RLock()
	defer c.state.RUnlock()

	return lo.FilterMap(guild.Members, func(m *discordgo.Member, _ int) (core.Member, bool) {
		if m == nil || m.User == nil {
			return core.Member{}, false
		}
		return toMember(m), true
	}), nil
}

func (c *channel) Member(ctx context.Context, userID string) (core.Member, bool, error) {
	m, err := c.state.Member(c.guildID, userID)
	if errors.Is(err, discordgo.ErrStateNotFound) {
		return core.Member{}, false, nil
	}
	if err != nil {
		return core.Member{}, false, err
	}
	if m.User == nil {
		return core.Member{}, false, nil
	}
	return toMember(m), true, nil
}

func (c *channel) CanSend(ctx context.Context, userID string) (bool, error) {
	perms, err := c.state.UserChannelPermissions(userID, c.channelID)
	if errors.Is(err, discordgo.ErrStateNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return perms&discordgo.PermissionSendMessages != 0, nil
}

func toMember(m *discordgo.Member) core.Member {
	name := m.Nick
	if name == "" {
		name = m.User.GlobalName
	}
	if name == "" {
		name = m.User.Username
	}

	// "0" marks an account migrated to unique usernames
	discriminator := m.User.Discriminator
	if discriminator == "0" {
		discriminator = ""
	}

	return core.Member{
		ID:            m.User.ID,
		DisplayName:   name,
		Username:      m.User.Username,
		Discriminator: discriminator,
	}
}
