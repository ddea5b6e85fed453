package missions

import (
	"errors"

	"github.com/example/skillspace/internal/progression"
	"github.com/example/skillspace/pkg/models"
)

// Strike progress constants
const (
	StrikeIncrement  = 5
	StrikeCheckpoint = 25
	StrikeComplete   = 100
)

// StrikePhases are the status labels shown at each checkpoint
var StrikePhases = [...]string{
	"Linking Nodes...",
	"Injecting Code...",
	"Optimizing...",
	"Strike Complete.",
}

// ErrStrikeInProgress is returned when a strike is started while another one runs
var ErrStrikeInProgress = errors.New("a strike is already in progress")

// Reward is the payout of a completed strike
type Reward struct {
	XP     int `json:"xp"`
	Points int `json:"points"`
}

// Strike is the state of a simulated war room mission run.
// It advances only through Tick, one tick per scheduler interval.
type Strike struct {
	Mission   models.WarRoomMission `json:"mission"`
	Progress  int                   `json:"progress"`
	Phase     string                `json:"phase"`
	Ticks     int                   `json:"ticks"`
	Completed bool                  `json:"completed"`
	phaseIdx  int
}

// StartStrike begins a strike at zero progress
func StartStrike(m models.WarRoomMission) Strike {
	return Strike{Mission: m}
}

// Tick advances the strike by one step. A completed strike does not change.
func (s Strike) Tick() Strike {
	if s.Completed {
		return s
	}
	next := s
	next.Ticks++
	if s.Progress >= StrikeComplete {
		next.Progress = StrikeComplete
		next.Completed = true
		return next
	}
	if s.Progress%StrikeCheckpoint == 0 && s.phaseIdx < len(StrikePhases) {
		next.Phase = StrikePhases[s.phaseIdx]
		next.phaseIdx++
	}
	next.Progress += StrikeIncrement
	return next
}

// TicksToComplete is the number of ticks a strike needs to complete
func TicksToComplete() int {
	return StrikeComplete/StrikeIncrement + 1
}

// Reward returns the payout. Points are half the reward rounded down.
func (s Strike) Reward() Reward {
	points := s.Mission.Reward / 2
	if s.Mission.Reward < 0 && s.Mission.Reward%2 != 0 {
		points--
	}
	return Reward{XP: s.Mission.Reward, Points: points}
}

// Settle pays the strike reward into the guild channel. Incomplete strikes pay nothing.
func (s Strike) Settle(state progression.State) (progression.State, Reward, bool) {
	if !s.Completed {
		return state, Reward{}, false
	}
	r := s.Reward()
	return state.GrantGuildMissionReward(r.XP, r.Points), r, true
}
