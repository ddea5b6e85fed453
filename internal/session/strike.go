package session

import (
	"go.uber.org/zap"

	"github.com/example/skillspace/internal/missions"
	"github.com/example/skillspace/internal/progression"
)

// StrikeEvent is published on every strike tick. Reward is set on the final event.
type StrikeEvent struct {
	Strike missions.Strike  `json:"strike"`
	Reward *missions.Reward `json:"reward,omitempty"`
}

const subscriberBuffer = 32

// Subscribe returns a channel of strike events and a function that ends the
// subscription. The channel is closed when the session closes.
func (s *Session) Subscribe() (<-chan StrikeEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan StrikeEvent, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			close(c)
			delete(s.subs, id)
		}
	}
}

// publish fans an event out to subscribers. Slow subscribers miss events.
// Callers hold mu.
func (s *Session) publish(ev StrikeEvent) {
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// StartStrike launches a war room mission. Only one strike runs at a time.
func (s *Session) StartStrike(missionID string) (missions.Strike, error) {
	m, ok := s.opts.Catalog.WarRoomMission(missionID)
	if !ok {
		return missions.Strike{}, ErrUnknownMission
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return missions.Strike{}, ErrClosed
	}
	if s.strike != nil {
		return missions.Strike{}, missions.ErrStrikeInProgress
	}
	if s.ticker != nil {
		// previous runner already returned from its last step
		s.ticker.Stop()
	}

	st := missions.StartStrike(m)
	s.strike = &st
	s.lastReward = nil
	s.ticker = missions.StartTicker(s.ctx, s.opts.TickInterval, s.tick)
	s.publish(StrikeEvent{Strike: st})
	s.logger.Info("strike started", zap.String("mission", m.ID), zap.Int("reward", m.Reward))
	return st, nil
}

// tick advances the active strike and settles it on completion
func (s *Session) tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.strike == nil {
		return true
	}

	next := s.strike.Tick()
	if !next.Completed {
		s.strike = &next
		s.publish(StrikeEvent{Strike: next})
		return false
	}

	state, reward, _ := next.Settle(s.progress)
	s.record(progression.GuildMissionReward(reward.XP, reward.Points), state)
	s.guilds = s.opts.ExpPolicy.Credit(s.guilds, s.selectedGuild, reward.XP)
	s.strike = nil
	s.lastReward = &reward
	s.publish(StrikeEvent{Strike: next, Reward: &reward})
	s.logger.Info("strike complete",
		zap.String("mission", next.Mission.ID),
		zap.Int("xp", reward.XP),
		zap.Int("points", reward.Points))
	return true
}

// ActiveStrike returns the running strike, if any
func (s *Session) ActiveStrike() (missions.Strike, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.strike == nil {
		return missions.Strike{}, false
	}
	return *s.strike, true
}

// AcknowledgeReward clears the last strike reward and returns it
func (s *Session) AcknowledgeReward() (missions.Reward, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastReward == nil {
		return missions.Reward{}, false
	}
	r := *s.lastReward
	s.lastReward = nil
	return r, true
}
