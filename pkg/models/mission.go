package models

// DailyMission is a once-per-day objective that pays XP when claimed
type DailyMission struct {
	ID          string `json:"id" yaml:"id" db:"id"`
	Title       string `json:"title" yaml:"title" db:"title"`
	Description string `json:"description" yaml:"description" db:"description"`
	RewardXP    int    `json:"reward_xp" yaml:"reward_xp" db:"reward_xp"`
	IsCompleted bool   `json:"is_completed" yaml:"-" db:"-"`
	Icon        string `json:"icon" yaml:"icon" db:"icon"`
}

// MissionType classifies war room missions
type MissionType string

const (
	MissionCoding   MissionType = "CODING"
	MissionLearning MissionType = "LEARNING"
	MissionReview   MissionType = "REVIEW"
)

// WarRoomMission is a guild-scoped mission run as a simulated strike
type WarRoomMission struct {
	ID            string      `json:"id" yaml:"id" db:"id"`
	Title         string      `json:"title" yaml:"title" db:"title"`
	Description   string      `json:"description" yaml:"description" db:"description"`
	Reward        int         `json:"reward" yaml:"reward" db:"reward"`
	Difficulty    string      `json:"difficulty" yaml:"difficulty" db:"difficulty"`
	Type          MissionType `json:"type" yaml:"type" db:"type"`
	SquadCapacity int         `json:"squad_capacity" yaml:"squad_capacity" db:"squad_capacity"`
	CurrentSquad  int         `json:"current_squad" yaml:"current_squad" db:"current_squad"`
}
