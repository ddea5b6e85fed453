package guilds

import "fmt"

// ExpPolicy decides whether guild channel rewards also credit a guild
type ExpPolicy string

const (
	// PolicyNone leaves guild experience untouched by gameplay
	PolicyNone ExpPolicy = "none"
	// PolicySelected credits guild rewards to the guild the user has selected
	PolicySelected ExpPolicy = "selected"
)

// ParseExpPolicy parses a policy name, defaulting to PolicyNone for an empty value
func ParseExpPolicy(s string) (ExpPolicy, error) {
	switch ExpPolicy(s) {
	case "", PolicyNone:
		return PolicyNone, nil
	case PolicySelected:
		return PolicySelected, nil
	default:
		return "", fmt.Errorf("unknown guild exp policy %q", s)
	}
}

// Credit applies a guild channel reward according to the policy
func (p ExpPolicy) Credit(r Registry, guildID string, xp int) Registry {
	if p != PolicySelected || guildID == "" {
		return r
	}
	next, err := r.AddExperience(guildID, xp)
	if err != nil {
		return r
	}
	return next
}
