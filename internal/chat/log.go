package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/skillspace/pkg/models"
)

// Avatar color tags used by the dashboard
const (
	ColorMentor = "bg-indigo-600"
	ColorUser   = "bg-slate-700"
)

// Opening messages of the two conversation logs
const (
	MentorGreeting = "Hello! I am your **SkillSpace AI Mentor**. I specialize in C++, Python, Java, and AI/ML.\n\n" +
		"How can I help you level up your engineering skills today?"
	GuildChannelOpened = "Guild communication channel initialized."
)

// TimestampLayout is the HH:MM format of message timestamps
const TimestampLayout = "15:04"

// Log is an append-only conversation. Messages are never modified after Append.
type Log struct {
	messages []models.ChatMessage
	now      func() time.Time
}

// NewLog creates a log starting with the given messages
func NewLog(initial ...models.ChatMessage) *Log {
	l := &Log{now: time.Now}
	l.messages = append(l.messages, initial...)
	return l
}

// NewMentorLog creates the mentor conversation with its greeting
func NewMentorLog() *Log {
	l := NewLog()
	l.Append(models.RoleModel, "", MentorGreeting, ColorMentor)
	return l
}

// NewGuildLog creates the guild comms channel with the moderator notice
func NewGuildLog() *Log {
	l := NewLog()
	l.Append(models.RoleSystem, "MODERATOR", GuildChannelOpened, ColorMentor)
	return l
}

// Append adds a message. Blank text is ignored and reports false.
func (l *Log) Append(role models.Role, sender, text, color string) (models.ChatMessage, bool) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, false
	}
	msg := models.ChatMessage{
		ID:          uuid.NewString(),
		Role:        role,
		Text:        text,
		Sender:      sender,
		Timestamp:   l.now().Format(TimestampLayout),
		AvatarColor: color,
	}
	l.messages = append(l.messages, msg)
	return msg, true
}

// Messages returns a copy of the log
func (l *Log) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages
func (l *Log) Len() int {
	return len(l.messages)
}
