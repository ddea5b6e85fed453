package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/skillspace/internal/ai"
	"github.com/example/skillspace/internal/catalog"
	"github.com/example/skillspace/internal/chat"
	"github.com/example/skillspace/internal/guilds"
	"github.com/example/skillspace/internal/missions"
	"github.com/example/skillspace/internal/progression"
	"github.com/example/skillspace/internal/tasks"
	"github.com/example/skillspace/pkg/models"
)

// DefaultMentorDomain is the domain label sent with mentor questions
const DefaultMentorDomain = "Full Stack & AI"

// Sender name of the user's own guild channel messages
const GuildSenderYou = "YOU"

var (
	ErrClosed         = errors.New("session is closed")
	ErrUnknownSkill   = errors.New("unknown skill")
	ErrUnknownMission = errors.New("unknown war room mission")
	ErrMentorBusy     = errors.New("mentor request already in flight")
	ErrNoGuild        = errors.New("no guild selected")
)

// Mentor is the AI side of a session. *ai.Mentor satisfies it.
type Mentor interface {
	Ask(ctx context.Context, domain, query string) ai.Reply
	Validate(ctx context.Context, challenge, code, language string) ai.Verdict
	DevTool(ctx context.Context, tool ai.Tool, input string) ai.Reply
}

// Options configure new sessions
type Options struct {
	Catalog      *catalog.Catalog
	Mentor       Mentor
	ExpPolicy    guilds.ExpPolicy
	TickInterval time.Duration
	Logger       *zap.Logger
}

// Snapshot is a read-only view of a session
type Snapshot struct {
	ID            string                `json:"id"`
	Stats         models.UserStats      `json:"stats"`
	DailyMissions []models.DailyMission `json:"daily_missions"`
	Guilds        []models.Guild        `json:"guilds"`
	SelectedGuild string                `json:"selected_guild,omitempty"`
	Tasks         []models.StudyTask    `json:"tasks"`
	Strike        *missions.Strike      `json:"strike,omitempty"`
	LastReward    *missions.Reward      `json:"last_reward,omitempty"`
	Drill         Drill                 `json:"drill"`
}

// Session is one user's dashboard. All mutations are serialised by mu;
// mentor calls run without holding it.
type Session struct {
	id     string
	opts   Options
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	closed        bool
	progress      progression.State
	initial       progression.State
	history       []progression.Action
	daily         missions.Daily
	guilds        guilds.Registry
	selectedGuild string
	tasks         tasks.List
	mentorLog     *chat.Log
	guildLog      *chat.Log
	mentorBusy    bool
	drillBusy     bool
	drill         Drill

	strike     *missions.Strike
	ticker     *missions.Ticker
	lastReward *missions.Reward
	subs       map[int]chan StrikeEvent
	nextSub    int
}

// New creates a session seeded with the mock profile and the catalog's reference data
func New(id string, opts Options) *Session {
	if opts.Catalog == nil {
		opts.Catalog = catalog.MustDefault()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ExpPolicy == "" {
		opts.ExpPolicy = guilds.PolicyNone
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = missions.DefaultTickInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	initial := progression.Default()
	s := &Session{
		id:        id,
		opts:      opts,
		logger:    opts.Logger.With(zap.String("session", id)),
		ctx:       ctx,
		cancel:    cancel,
		progress:  initial,
		initial:   initial,
		daily:     missions.NewDaily(opts.Catalog.DailyMissions),
		guilds:    guilds.NewRegistry(opts.Catalog.Guilds),
		tasks:     tasks.DefaultList(),
		mentorLog: chat.NewMentorLog(),
		guildLog:  chat.NewGuildLog(),
		subs:      make(map[int]chan StrikeEvent),
	}
	s.drill = s.newDrill(0, catalog.LanguageCPP)
	return s
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:            s.id,
		Stats:         s.progress.Stats(),
		DailyMissions: s.daily.List(),
		Guilds:        s.guilds.List(),
		SelectedGuild: s.selectedGuild,
		Tasks:         s.tasks.Items(),
		Drill:         s.drill,
	}
	if s.strike != nil {
		st := *s.strike
		snap.Strike = &st
	}
	if s.lastReward != nil {
		r := *s.lastReward
		snap.LastReward = &r
	}
	return snap
}

// Progress returns the progression snapshot
func (s *Session) Progress() progression.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Actions returns every progression action applied so far. Replaying them over
// the initial profile reproduces Progress.
func (s *Session) Actions() (progression.State, []progression.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]progression.Action, len(s.history))
	copy(out, s.history)
	return s.initial, out
}

// apply runs an action through the reducer. Callers hold mu.
func (s *Session) apply(a progression.Action) {
	s.progress = progression.Reduce(s.progress, a)
	s.history = append(s.history, a)
	s.logger.Debug("progression", zap.Stringer("action", a), zap.Int("xp", s.progress.XP))
}

// record notes an action whose effect was already applied by a registry
func (s *Session) record(a progression.Action, next progression.State) {
	s.progress = next
	s.history = append(s.history, a)
	s.logger.Debug("progression", zap.Stringer("action", a), zap.Int("xp", s.progress.XP))
}

// Enroll enrolls the user in a catalog skill. It reports false when already enrolled.
func (s *Session) Enroll(skillID string) (bool, error) {
	if _, ok := s.opts.Catalog.Skill(skillID); !ok {
		return false, ErrUnknownSkill
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	if s.progress.IsEnrolled(skillID) {
		return false, nil
	}
	s.apply(progression.Enroll(skillID))
	return true, nil
}

// ClaimDaily claims a pending daily mission. Unknown or completed missions report false.
func (s *Session) ClaimDaily(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	mission, _ := s.daily.Get(id)
	daily, next, claimed := s.daily.Claim(id, s.progress)
	if !claimed {
		return false
	}
	s.daily = daily
	s.record(progression.MissionReward(mission.RewardXP, progression.DailyMissionPoints), next)
	return true
}

// ResetDaily returns every daily mission to pending. Closed sessions are left as they are.
func (s *Session) ResetDaily() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.daily = s.daily.Reset()
}

// CreateGuild creates a guild, selects it and grants the creation bonus
func (s *Session) CreateGuild(name, tag string) (models.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Guild{}, ErrClosed
	}
	reg, g, err := s.guilds.Create(name, tag)
	if err != nil {
		return models.Guild{}, err
	}
	s.guilds = reg
	s.selectedGuild = g.ID
	s.apply(progression.GuildCreation())
	s.logger.Info("guild created", zap.String("guild", g.ID), zap.String("tag", g.Tag))
	return g, nil
}

// SelectGuild makes a guild the active one for comms and drills
func (s *Session) SelectGuild(id string) (models.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Guild{}, ErrClosed
	}
	g, ok := s.guilds.Get(id)
	if !ok {
		return models.Guild{}, guilds.ErrUnknownGuild
	}
	s.selectedGuild = g.ID
	return g, nil
}

// Standings returns guilds ordered by experience
func (s *Session) Standings() []models.Guild {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guilds.Standings()
}

// PostGuildMessage appends a user message to the guild channel
func (s *Session) PostGuildMessage(text string) (models.ChatMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.ChatMessage{}, false, ErrClosed
	}
	if s.selectedGuild == "" {
		return models.ChatMessage{}, false, ErrNoGuild
	}
	msg, ok := s.guildLog.Append(models.RoleUser, GuildSenderYou, text, chat.ColorMentor)
	return msg, ok, nil
}

// GuildMessages returns the guild channel log
func (s *Session) GuildMessages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guildLog.Messages()
}

// MentorMessages returns the mentor conversation
func (s *Session) MentorMessages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mentorLog.Messages()
}

// AskMentor sends a question to the mentor. The use bonus is granted before
// the call; the reply, fallback text included, is appended to the log.
// A blank question is ignored and reports false.
func (s *Session) AskMentor(ctx context.Context, question string) (ai.Reply, bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ai.Reply{}, false, ErrClosed
	}
	if s.mentorBusy {
		s.mu.Unlock()
		return ai.Reply{}, false, ErrMentorBusy
	}
	if _, ok := s.mentorLog.Append(models.RoleUser, "", question, chat.ColorUser); !ok {
		s.mu.Unlock()
		return ai.Reply{}, false, nil
	}
	s.mentorBusy = true
	s.apply(progression.MentorUse())
	s.mu.Unlock()

	reply := s.mentor().Ask(ctx, DefaultMentorDomain, question)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mentorBusy = false
	s.mentorLog.Append(models.RoleModel, "", reply.Text, chat.ColorMentor)
	if !reply.OK() {
		s.logger.Warn("mentor fallback", zap.String("status", string(reply.Status)), zap.String("reason", reply.Reason))
	}
	return reply, true, nil
}

// DevTool runs a developer toolbox helper. It does not touch progression.
func (s *Session) DevTool(ctx context.Context, tool ai.Tool, input string) ai.Reply {
	return s.mentor().DevTool(ctx, tool, input)
}

func (s *Session) mentor() Mentor {
	if s.opts.Mentor == nil {
		return offlineMentor{}
	}
	return s.opts.Mentor
}

// Close stops the strike runner and ends every subscription.
// An interrupted strike pays nothing.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	t := s.ticker
	s.ticker = nil
	s.strike = nil
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.mu.Unlock()

	s.cancel()
	if t != nil {
		t.Stop()
	}
}

// offlineMentor answers with the service fallbacks when no AI client is configured
type offlineMentor struct{}

func (offlineMentor) Ask(context.Context, string, string) ai.Reply {
	return ai.Reply{Status: ai.StatusFailed, Text: ai.FallbackMentorError, Reason: "mentor not configured"}
}

func (offlineMentor) Validate(context.Context, string, string, string) ai.Verdict {
	v := ai.DecodeVerdict(ai.FallbackValidation)
	v.Failed = true
	return v
}

func (offlineMentor) DevTool(context.Context, ai.Tool, string) ai.Reply {
	return ai.Reply{Status: ai.StatusFailed, Text: ai.FallbackToolingError, Reason: "mentor not configured"}
}
