package bot

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/example/skillspace/internal/catalog"
	"github.com/example/skillspace/internal/config"
	"github.com/example/skillspace/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type fakeAPI struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) last() tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestBot(t *testing.T, tick time.Duration) (*Bot, *fakeAPI, *session.Store) {
	t.Helper()
	cat := catalog.MustDefault()
	store := session.NewStore(session.Options{Catalog: cat, TickInterval: tick})
	b, err := New(config.TelegramConfig{Token: "test"}, store, cat, nil)
	require.NoError(t, err)
	api := &fakeAPI{}
	b.api = api
	t.Cleanup(func() {
		store.CloseAll()
		b.watchers.Wait()
	})
	return b, api, store
}

func command(chatID int64, text string) *tgbotapi.Message {
	end := len(text)
	for i, r := range text {
		if r == ' ' {
			end = i
			break
		}
	}
	return &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		From:     &tgbotapi.User{ID: chatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: end}},
	}
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New(config.TelegramConfig{}, nil, nil, nil)
	assert.Error(t, err)
}

func TestClaimAndStats(t *testing.T) {
	b, api, store := newTestBot(t, 0)
	ctx := context.Background()

	require.NoError(t, b.HandleCommand(ctx, command(7, "/claim d1")))
	assert.Contains(t, api.last().Text, "Mission claimed")

	require.NoError(t, b.HandleCommand(ctx, command(7, "/claim d1")))
	assert.Contains(t, api.last().Text, "already claimed")

	require.NoError(t, b.HandleCommand(ctx, command(7, "/stats")))
	assert.Contains(t, api.last().Text, "XP: 1500")
	assert.Contains(t, api.last().Text, "Streak: 6")

	sess, ok := store.Get("tg:7")
	require.True(t, ok)
	assert.Equal(t, 1500, sess.Progress().XP)
}

func TestEnrollAndGuild(t *testing.T) {
	b, api, _ := newTestBot(t, 0)
	ctx := context.Background()

	require.NoError(t, b.HandleCommand(ctx, command(1, "/enroll datascience")))
	assert.Contains(t, api.last().Text, "+800 XP")
	require.NoError(t, b.HandleCommand(ctx, command(1, "/enroll datascience")))
	assert.Contains(t, api.last().Text, "already enrolled")
	require.NoError(t, b.HandleCommand(ctx, command(1, "/enroll basket-weaving")))
	assert.Contains(t, api.last().Text, "Unknown skill")

	require.NoError(t, b.HandleCommand(ctx, command(1, "/newguild Null Pointers np")))
	assert.Equal(t, "🏰 Null Pointers [NP] founded! +1500 XP", api.last().Text)
	require.NoError(t, b.HandleCommand(ctx, command(1, "/newguild Verbose TOOLONG")))
	assert.Contains(t, api.last().Text, "1 to 3 characters")
}

func TestDrillKeepsLanguage(t *testing.T) {
	b, api, store := newTestBot(t, 0)
	ctx := context.Background()

	require.NoError(t, b.HandleCommand(ctx, command(4, "/drill 1 python")))
	assert.Contains(t, api.last().Text, "(PYTHON)")

	require.NoError(t, b.HandleCommand(ctx, command(4, "/drill 2")))
	assert.Contains(t, api.last().Text, "(PYTHON)")

	sess, ok := store.Get("tg:4")
	require.True(t, ok)
	d := sess.Snapshot().Drill
	assert.Equal(t, "c2", d.ChallengeID)
	assert.Equal(t, catalog.LanguagePython, d.Language)
}

func TestAskWithoutMentorUsesFallback(t *testing.T) {
	b, api, _ := newTestBot(t, 0)
	require.NoError(t, b.HandleCommand(context.Background(), command(3, "/ask what is RAII?")))
	assert.Equal(t, "I encountered an error while thinking. Let's try that again.", api.last().Text)
}

func TestTaskCallbacks(t *testing.T) {
	b, api, store := newTestBot(t, 0)
	ctx := context.Background()

	require.NoError(t, b.HandleCommand(ctx, command(5, "/addtask Read about B-trees")))
	assert.Contains(t, api.last().Text, "Read about B-trees")

	sess, _ := store.Get("tg:5")
	task := sess.Tasks()[0]
	cb := &tgbotapi.CallbackQuery{ID: "x", Data: prefixToggle + task.ID, Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 5}}}
	require.NoError(t, b.HandleCallback(ctx, cb))
	assert.True(t, sess.Tasks()[0].IsCompleted)

	cb.Data = prefixDelete + task.ID
	require.NoError(t, b.HandleCallback(ctx, cb))
	assert.Len(t, sess.Tasks(), 3)
}

func TestStrikeReportsReward(t *testing.T) {
	b, api, _ := newTestBot(t, 5*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, b.HandleCommand(ctx, command(9, "/strike m2")))
	assert.Contains(t, api.last().Text, "Strike launched")

	require.NoError(t, b.HandleCommand(ctx, command(9, "/strike m1")))
	assert.Contains(t, api.last().Text, "already running")

	require.Eventually(t, func() bool {
		return api.count() == 3
	}, 5*time.Second, 5*time.Millisecond)
	b.watchers.Wait()
	assert.Equal(t, "🏆 Strike Complete.\n+800 XP, +400 points", api.last().Text)
}

func TestUnknownCommand(t *testing.T) {
	b, api, _ := newTestBot(t, 0)
	require.NoError(t, b.HandleCommand(context.Background(), command(2, "/dance")))
	assert.Contains(t, api.last().Text, "Unknown command")
}
