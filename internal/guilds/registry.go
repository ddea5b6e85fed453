package guilds

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/example/skillspace/pkg/models"
)

// MaxTagLength is the longest tag a guild may carry
const MaxTagLength = 3

var (
	ErrEmptyName    = errors.New("guild name is required")
	ErrInvalidTag   = fmt.Errorf("guild tag must be 1 to %d characters", MaxTagLength)
	ErrUnknownGuild = errors.New("guild not found")
)

// Registry is an immutable snapshot of the guild board
type Registry struct {
	guilds []models.Guild
	newID  func() string
}

// NewRegistry creates a registry seeded with the given guilds
func NewRegistry(seed []models.Guild) Registry {
	guilds := make([]models.Guild, len(seed))
	copy(guilds, seed)
	return Registry{guilds: guilds, newID: uuid.NewString}
}

// List returns the guilds in creation order
func (r Registry) List() []models.Guild {
	out := make([]models.Guild, len(r.guilds))
	copy(out, r.guilds)
	return out
}

// Get returns a guild by id
func (r Registry) Get(id string) (models.Guild, bool) {
	for _, g := range r.guilds {
		if g.ID == id {
			return g, true
		}
	}
	return models.Guild{}, false
}

// Create adds a guild with one member and no experience. Its rank is the
// position it was appended at and is only a display placeholder.
func (r Registry) Create(name, tag string) (Registry, models.Guild, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return r, models.Guild{}, ErrEmptyName
	}
	tag, err := NormalizeTag(tag)
	if err != nil {
		return r, models.Guild{}, err
	}

	g := models.Guild{
		ID:      r.id(),
		Name:    name,
		Tag:     tag,
		Rank:    len(r.guilds) + 1,
		Members: 1,
		Exp:     0,
	}
	next := r.clone()
	next.guilds = append(next.guilds, g)
	return next, g, nil
}

// AddMember increments a guild's member count
func (r Registry) AddMember(id string) (Registry, error) {
	return r.update(id, func(g *models.Guild) {
		g.Members++
	})
}

// AddExperience adds amount to a guild's accumulated experience
func (r Registry) AddExperience(id string, amount int) (Registry, error) {
	return r.update(id, func(g *models.Guild) {
		g.Exp += amount
	})
}

// Standings returns the guilds ordered by experience with ranks recomputed.
// Ties keep creation order.
func (r Registry) Standings() []models.Guild {
	out := r.List()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Exp > out[j].Exp
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// NormalizeTag trims and upper-cases a tag and checks its length
func NormalizeTag(tag string) (string, error) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if n := utf8.RuneCountInString(tag); n == 0 || n > MaxTagLength {
		return "", ErrInvalidTag
	}
	return tag, nil
}

func (r Registry) update(id string, fn func(*models.Guild)) (Registry, error) {
	for i := range r.guilds {
		if r.guilds[i].ID == id {
			next := r.clone()
			fn(&next.guilds[i])
			return next, nil
		}
	}
	return r, fmt.Errorf("%w: %s", ErrUnknownGuild, id)
}

func (r Registry) clone() Registry {
	return Registry{guilds: r.List(), newID: r.newID}
}

func (r Registry) id() string {
	if r.newID == nil {
		return uuid.NewString()
	}
	return r.newID()
}
