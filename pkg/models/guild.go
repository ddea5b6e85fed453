package models

// Guild is a user-created group shown on the guild board
type Guild struct {
	ID      string `json:"id" yaml:"id" db:"id"`
	Name    string `json:"name" yaml:"name" db:"name"`
	Tag     string `json:"tag" yaml:"tag" db:"tag"`
	Rank    int    `json:"rank" yaml:"rank" db:"rank"` // display position, see guilds.Standings
	Members int    `json:"members" yaml:"members" db:"members"`
	Exp     int    `json:"exp" yaml:"exp" db:"exp"`
}
