package models

// SkillCategory groups skills on the learn tracks page
type SkillCategory string

const (
	CategoryLanguages   SkillCategory = "Languages"
	CategoryAIML        SkillCategory = "AI & Machine Learning"
	CategoryDataScience SkillCategory = "Data Science"
	CategoryDevelopment SkillCategory = "Development"
)

// Concept is a sub-topic of a skill track
type Concept struct {
	Title       string `json:"title" yaml:"title" db:"title"`
	Description string `json:"description" yaml:"description" db:"description"`
}

// Skill is an immutable catalog entry for a learning track
type Skill struct {
	ID          string        `json:"id" yaml:"id" db:"id"`
	Name        string        `json:"name" yaml:"name" db:"name"`
	Icon        string        `json:"icon" yaml:"icon" db:"icon"`
	Category    SkillCategory `json:"category" yaml:"category" db:"category"`
	Difficulty  string        `json:"difficulty" yaml:"difficulty" db:"difficulty"` // Beginner, Intermediate or Advanced
	Description string        `json:"description" yaml:"description" db:"description"`
	Progress    int           `json:"progress" yaml:"progress" db:"progress"` // 0-100, static
	Concepts    []Concept     `json:"concepts" yaml:"concepts" db:"-"`
}

// CodeChallenge is a logic core drill validated by the mentor
type CodeChallenge struct {
	ID          string `json:"id" yaml:"id" db:"id"`
	Title       string `json:"title" yaml:"title" db:"title"`
	Description string `json:"description" yaml:"description" db:"description"`
	Difficulty  string `json:"difficulty" yaml:"difficulty" db:"difficulty"` // BASIC or INTERMEDIATE
	StarterCode string `json:"starter_code" yaml:"starter_code" db:"starter_code"`
}
