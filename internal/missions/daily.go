package missions

import (
	"github.com/example/skillspace/internal/progression"
	"github.com/example/skillspace/pkg/models"
)

// Daily is an immutable snapshot of the daily mission board
type Daily struct {
	missions []models.DailyMission
}

// NewDaily creates a board from catalog definitions. Every mission starts pending.
func NewDaily(defs []models.DailyMission) Daily {
	missions := make([]models.DailyMission, len(defs))
	copy(missions, defs)
	for i := range missions {
		missions[i].IsCompleted = false
	}
	return Daily{missions: missions}
}

// List returns a copy of the missions in catalog order
func (d Daily) List() []models.DailyMission {
	out := make([]models.DailyMission, len(d.missions))
	copy(out, d.missions)
	return out
}

// Get returns a mission by id
func (d Daily) Get(id string) (models.DailyMission, bool) {
	for _, m := range d.missions {
		if m.ID == id {
			return m, true
		}
	}
	return models.DailyMission{}, false
}

// Claim completes a pending mission and pays its reward plus the fixed point bonus.
// Unknown or already completed missions leave both snapshots unchanged and report false.
func (d Daily) Claim(id string, state progression.State) (Daily, progression.State, bool) {
	for i, m := range d.missions {
		if m.ID != id {
			continue
		}
		if m.IsCompleted {
			return d, state, false
		}
		next := d.List()
		next[i].IsCompleted = true
		return Daily{missions: next}, state.GrantMissionReward(m.RewardXP, progression.DailyMissionPoints), true
	}
	return d, state, false
}

// Reset returns every mission to pending for a new day
func (d Daily) Reset() Daily {
	next := d.List()
	for i := range next {
		next[i].IsCompleted = false
	}
	return Daily{missions: next}
}

// CompletedCount returns how many missions are completed
func (d Daily) CompletedCount() int {
	n := 0
	for _, m := range d.missions {
		if m.IsCompleted {
			n++
		}
	}
	return n
}
