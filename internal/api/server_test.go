package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/example/skillspace/internal/ai"
	"github.com/example/skillspace/internal/catalog"
	"github.com/example/skillspace/internal/config"
	"github.com/example/skillspace/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type stubMentor struct{}

func (stubMentor) Ask(context.Context, string, string) ai.Reply {
	return ai.Reply{Status: ai.StatusOK, Text: "Pointers hold addresses."}
}

func (stubMentor) Validate(context.Context, string, string, string) ai.Verdict {
	return ai.DecodeVerdict("PASS: looks right")
}

func (stubMentor) DevTool(_ context.Context, tool ai.Tool, _ string) ai.Reply {
	return ai.Reply{Status: ai.StatusOK, Text: "ran " + string(tool)}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type testServer struct {
	t     *testing.T
	srv   *httptest.Server
	store *session.Store
}

func newTestServer(t *testing.T, tick time.Duration) *testServer {
	t.Helper()
	cat := catalog.MustDefault()
	store := session.NewStore(session.Options{Catalog: cat, Mentor: stubMentor{}, TickInterval: tick})
	srv := httptest.NewServer(NewServer(config.ServerConfig{}, store, cat, nil).Router())
	t.Cleanup(func() {
		store.CloseAll()
		srv.Close()
		http.DefaultClient.CloseIdleConnections()
	})
	return &testServer{t: t, srv: srv, store: store}
}

func (ts *testServer) do(method, path string, body interface{}, out interface{}) int {
	ts.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, &buf)
	require.NoError(ts.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(ts.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(ts.t, json.NewDecoder(resp.Body).Decode(&env))
	if out != nil && env.Success {
		require.NoError(ts.t, json.Unmarshal(env.Data, out))
	}
	return resp.StatusCode
}

func (ts *testServer) createSession() string {
	var snap session.Snapshot
	require.Equal(ts.t, http.StatusCreated, ts.do(http.MethodPost, "/api/v1/sessions", nil, &snap))
	require.NotEmpty(ts.t, snap.ID)
	return snap.ID
}

func TestHealthAndCatalog(t *testing.T) {
	ts := newTestServer(t, 0)

	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/health", nil, nil))

	var skills []map[string]interface{}
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/v1/catalog/skills", nil, &skills))
	assert.Len(t, skills, 5)
}

func TestUnknownSession(t *testing.T) {
	ts := newTestServer(t, 0)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, "/api/v1/sessions/nope/", nil, nil))
}

func TestDashboardFlow(t *testing.T) {
	ts := newTestServer(t, 0)
	id := ts.createSession()
	base := "/api/v1/sessions/" + id

	var changed changedResponse
	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, base+"/daily/d1/claim", nil, &changed))
	assert.True(t, changed.Changed)
	assert.Equal(t, 1500, changed.Snapshot.Stats.XP)
	assert.Equal(t, 6, changed.Snapshot.Stats.Streak)

	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, base+"/daily/d1/claim", nil, &changed))
	assert.False(t, changed.Changed)

	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, base+"/skills/cpp/enroll", nil, &changed))
	assert.True(t, changed.Changed)
	assert.Equal(t, 2300, changed.Snapshot.Stats.XP)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodPost, base+"/skills/cobol/enroll", nil, nil))

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, base+"/guilds/", createGuildRequest{Name: "Gophers", Tag: "GOPH"}, nil))
	var guild struct {
		ID  string `json:"id"`
		Tag string `json:"tag"`
	}
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, base+"/guilds/", createGuildRequest{Name: "Gophers", Tag: "go"}, &guild))
	assert.Equal(t, "GO", guild.Tag)

	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, base+"/guilds/messages", textRequest{Text: "hi team"}, nil))

	var reply ai.Reply
	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, base+"/mentor/ask", askRequest{Question: "pointers?"}, &reply))
	assert.Equal(t, "Pointers hold addresses.", reply.Text)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, base+"/mentor/ask", askRequest{Question: " "}, nil))

	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, base+"/tools/regex", toolRequest{Input: "emails"}, &reply))
	assert.Equal(t, "ran regex", reply.Text)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodPost, base+"/tools/compiler", toolRequest{}, nil))

	var result session.DrillResult
	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, base+"/drill/validate", nil, &result))
	assert.True(t, result.Rewarded)

	var snap session.Snapshot
	require.Equal(t, http.StatusOK, ts.do(http.MethodGet, base+"/", nil, &snap))
	// 1450 +50 claim +800 enroll +1500 guild +2 mentor +100 drill
	assert.Equal(t, 3902, snap.Stats.XP)
	assert.Equal(t, guild.ID, snap.SelectedGuild)
}

func TestTasksEndpoints(t *testing.T) {
	ts := newTestServer(t, 0)
	base := "/api/v1/sessions/" + ts.createSession()

	var task struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, base+"/tasks/", textRequest{Text: "Review heaps"}, &task))
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, base+"/tasks/", textRequest{Text: ""}, nil))

	var changed changedResponse
	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, base+"/tasks/"+task.ID+"/toggle", nil, &changed))
	assert.True(t, changed.Changed)
	assert.True(t, changed.Snapshot.Tasks[0].IsCompleted)

	require.Equal(t, http.StatusOK, ts.do(http.MethodDelete, base+"/tasks/"+task.ID, nil, &changed))
	assert.True(t, changed.Changed)
	assert.Len(t, changed.Snapshot.Tasks, 3)
}

func TestStrikeStream(t *testing.T) {
	ts := newTestServer(t, 5*time.Millisecond)
	id := ts.createSession()
	base := "/api/v1/sessions/" + id

	wsURL := "ws" + strings.TrimPrefix(ts.srv.URL, "http") + base + "/strike/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var msg StreamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "connected", msg.Type)

	require.Equal(t, http.StatusAccepted, ts.do(http.MethodPost, base+"/strike/", startStrikeRequest{MissionID: "m2"}, nil))
	assert.Equal(t, http.StatusConflict, ts.do(http.MethodPost, base+"/strike/", startStrikeRequest{MissionID: "m1"}, nil))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for msg.Type != "complete" {
		require.NoError(t, conn.ReadJSON(&msg))
	}
	require.NotNil(t, msg.Event.Reward)
	assert.Equal(t, 800, msg.Event.Reward.XP)
	assert.Equal(t, 400, msg.Event.Reward.Points)

	var reward struct {
		XP int `json:"xp"`
	}
	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, base+"/strike/acknowledge", nil, &reward))
	assert.Equal(t, 800, reward.XP)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodPost, base+"/strike/acknowledge", nil, nil))
}
