package progression

import (
	"sort"

	"github.com/example/skillspace/pkg/models"
)

// Reward amounts granted by progression events
const (
	EnrollmentXP       = 800
	EnrollmentPoints   = 200
	MentorUseXP        = 2
	GuildCreationXP    = 1500
	DailyMissionPoints = 50
)

// State is an immutable progression snapshot. Every grant returns a new State
// and leaves the receiver untouched.
type State struct {
	XP       int
	Points   int
	Streak   int
	enrolled []string // sorted, never shared between snapshots
}

// New creates a snapshot with the given counters and enrolled skills
func New(xp, points, streak int, enrolled ...string) State {
	s := State{XP: xp, Points: points, Streak: streak}
	for _, id := range enrolled {
		if !s.IsEnrolled(id) {
			s.enrolled = insertSorted(s.enrolled, id)
		}
	}
	return s
}

// Default returns the starting snapshot for a new dashboard session
func Default() State {
	return New(1450, 1200, 5, "python")
}

// Enrolled returns a copy of the enrolled skill ids in sorted order
func (s State) Enrolled() []string {
	out := make([]string, len(s.enrolled))
	copy(out, s.enrolled)
	return out
}

// IsEnrolled reports whether skillID is in the enrolled set
func (s State) IsEnrolled(skillID string) bool {
	i := sort.SearchStrings(s.enrolled, skillID)
	return i < len(s.enrolled) && s.enrolled[i] == skillID
}

// Stats returns the display view with rank and level derived from XP
func (s State) Stats() models.UserStats {
	derived := DeriveDisplayStats(s.XP)
	return models.UserStats{
		Level:            derived.Level,
		Streak:           s.Streak,
		Points:           s.Points,
		XP:               s.XP,
		Rank:             derived.Rank,
		EnrolledSkillIDs: s.Enrolled(),
	}
}

// GrantSkillEnrollment enrolls the user in a skill. Enrolling twice is a no-op.
func (s State) GrantSkillEnrollment(skillID string) State {
	if s.IsEnrolled(skillID) {
		return s
	}
	next := s
	next.enrolled = insertSorted(s.Enrolled(), skillID)
	next.XP += EnrollmentXP
	next.Points += EnrollmentPoints
	return next
}

// GrantMissionReward pays a mission reward and extends the streak
func (s State) GrantMissionReward(xp, points int) State {
	next := s
	next.XP += xp
	next.Points += points
	next.Streak++
	return next
}

// GrantMentorUse pays the per-question mentor bonus
func (s State) GrantMentorUse() State {
	next := s
	next.XP += MentorUseXP
	return next
}

// GrantGuildCreation pays the guild founder bonus
func (s State) GrantGuildCreation() State {
	next := s
	next.XP += GuildCreationXP
	return next
}

// GrantGuildMissionReward pays a guild channel reward. The streak is not touched.
func (s State) GrantGuildMissionReward(xp, points int) State {
	next := s
	next.XP += xp
	next.Points += points
	return next
}

func insertSorted(ids []string, id string) []string {
	i := sort.SearchStrings(ids, id)
	ids = append(ids, "")
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}
