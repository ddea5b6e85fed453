package progression

import "fmt"

// ActionKind names a progression event
type ActionKind string

const (
	ActionEnroll             ActionKind = "enroll"
	ActionMissionReward      ActionKind = "mission_reward"
	ActionMentorUse          ActionKind = "mentor_use"
	ActionGuildCreation      ActionKind = "guild_creation"
	ActionGuildMissionReward ActionKind = "guild_mission_reward"
)

// Action is one progression event. Only the fields relevant to Kind are read.
type Action struct {
	Kind    ActionKind `json:"kind"`
	SkillID string     `json:"skill_id,omitempty"`
	XP      int        `json:"xp,omitempty"`
	Points  int        `json:"points,omitempty"`
}

// Enroll builds an enrollment action
func Enroll(skillID string) Action {
	return Action{Kind: ActionEnroll, SkillID: skillID}
}

// MissionReward builds a streak-extending reward action
func MissionReward(xp, points int) Action {
	return Action{Kind: ActionMissionReward, XP: xp, Points: points}
}

// MentorUse builds a mentor bonus action
func MentorUse() Action {
	return Action{Kind: ActionMentorUse}
}

// GuildCreation builds a guild founder action
func GuildCreation() Action {
	return Action{Kind: ActionGuildCreation}
}

// GuildMissionReward builds a guild channel reward action
func GuildMissionReward(xp, points int) Action {
	return Action{Kind: ActionGuildMissionReward, XP: xp, Points: points}
}

// String implements fmt.Stringer
func (a Action) String() string {
	switch a.Kind {
	case ActionEnroll:
		return fmt.Sprintf("%s(%s)", a.Kind, a.SkillID)
	case ActionMissionReward, ActionGuildMissionReward:
		return fmt.Sprintf("%s(xp=%d, points=%d)", a.Kind, a.XP, a.Points)
	default:
		return string(a.Kind)
	}
}

// Reduce applies an action to a snapshot. Unknown kinds leave the state unchanged.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case ActionEnroll:
		return s.GrantSkillEnrollment(a.SkillID)
	case ActionMissionReward:
		return s.GrantMissionReward(a.XP, a.Points)
	case ActionMentorUse:
		return s.GrantMentorUse()
	case ActionGuildCreation:
		return s.GrantGuildCreation()
	case ActionGuildMissionReward:
		return s.GrantGuildMissionReward(a.XP, a.Points)
	default:
		return s
	}
}

// Replay folds actions over an initial snapshot
func Replay(initial State, actions ...Action) State {
	s := initial
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}
