package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/skillspace/pkg/models"
)

func TestAppend(t *testing.T) {
	l := NewLog()
	l.now = func() time.Time { return time.Date(2026, 1, 2, 9, 5, 0, 0, time.UTC) }

	msg, ok := l.Append(models.RoleUser, "YOU", "hello guild", ColorUser)
	require.True(t, ok)
	assert.Equal(t, "09:05", msg.Timestamp)
	assert.Equal(t, models.RoleUser, msg.Role)
	assert.NotEmpty(t, msg.ID)

	_, ok = l.Append(models.RoleUser, "YOU", "  \n", ColorUser)
	assert.False(t, ok)
	assert.Equal(t, 1, l.Len())
}

func TestMessagesIsCopy(t *testing.T) {
	l := NewGuildLog()
	msgs := l.Messages()
	msgs[0].Text = "changed"
	assert.Equal(t, GuildChannelOpened, l.Messages()[0].Text)
	assert.Equal(t, models.RoleSystem, l.Messages()[0].Role)
	assert.Equal(t, "MODERATOR", l.Messages()[0].Sender)
}

func TestMentorLogGreeting(t *testing.T) {
	l := NewMentorLog()
	require.Equal(t, 1, l.Len())
	assert.Equal(t, models.RoleModel, l.Messages()[0].Role)
	assert.Equal(t, MentorGreeting, l.Messages()[0].Text)
}
