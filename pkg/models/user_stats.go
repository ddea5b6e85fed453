package models

// Rank is the coarse tier derived from XP
type Rank string

const (
	RankBronze   Rank = "BRONZE"
	RankSilver   Rank = "SILVER"
	RankGold     Rank = "GOLD"
	RankPlatinum Rank = "PLATINUM"
)

// UserStats is the display view of a user's progression
type UserStats struct {
	Level            int      `json:"level"`
	Streak           int      `json:"streak"`
	Points           int      `json:"points"`
	XP               int      `json:"xp"`
	Rank             Rank     `json:"rank"`
	EnrolledSkillIDs []string `json:"enrolled_skill_ids"`
}
