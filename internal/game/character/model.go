// Package character defines the character aggregate: identity, class tags,
// attributes and the abilities the character can use.
package character

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/cory-johannsen/anarpg/internal/game/ability"
	"github.com/cory-johannsen/anarpg/internal/game/stats"
)

// Character represents a player character or an NPC.
//
// A Character exclusively owns its Stats and abilities; Clone deep-copies both.
type Character struct {
	ID    string // set by New; kept by Clone
	Name  string
	Class string // free text, e.g. "Human, cop, woman"
	Stats stats.Stats

	abilities []ability.Ability
}

// New creates a Character with baseline stats and no abilities.
//
// Postcondition: Stats == stats.New(); len(Abilities()) == 0; ID is a fresh UUID.
func New(name, class string) *Character {
	return &Character{
		ID:    uuid.New().String(),
		Name:  name,
		Class: class,
		Stats: stats.New(),
	}
}

// isDelimiter reports whether r separates class tags.
func isDelimiter(r rune) bool {
	return r == ',' || r == ';' || unicode.IsSpace(r)
}

// Classes returns the class tags in Class, split on commas, semicolons and
// whitespace. Empty tokens are dropped; case is preserved.
func (c *Character) Classes() []string {
	return strings.FieldsFunc(c.Class, isDelimiter)
}

// IsA reports whether tag matches one whole class token, ignoring case.
// "ranger" does not match "rangers".
func (c *Character) IsA(tag string) bool {
	for _, token := range c.Classes() {
		if strings.EqualFold(token, tag) {
			return true
		}
	}
	return false
}

// AddAbility appends a to the character's abilities.
//
// Precondition: a must not be nil.
func (c *Character) AddAbility(a ability.Ability) {
	c.abilities = append(c.abilities, a)
}

// Abilities returns the character's abilities in insertion order. The
// returned slice is a new allocation but shares the ability values.
func (c *Character) Abilities() []ability.Ability {
	out := make([]ability.Ability, len(c.abilities))
	copy(out, c.abilities)
	return out
}

// Ability returns the first ability named name.
func (c *Character) Ability(name string) (ability.Ability, bool) {
	for _, a := range c.abilities {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// HasAbility reports whether the character has an ability named name.
func (c *Character) HasAbility(name string) bool {
	_, ok := c.Ability(name)
	return ok
}

// EffectiveStats returns a copy of the character's stats after the named
// ability's ModifyStats. c.Stats is not changed.
//
// Postcondition: Returns (copy, true), or (c.Stats, false) if the ability is unknown.
func (c *Character) EffectiveStats(name string) (stats.Stats, bool) {
	s := c.Stats
	a, ok := c.Ability(name)
	if !ok {
		return s, false
	}
	a.ModifyStats(&s)
	return s, true
}

// Clone returns a deep copy of c. Every ability is duplicated with its own Clone.
//
// Postcondition: mutating the clone's Stats or abilities never affects c.
func (c *Character) Clone() *Character {
	cp := *c
	cp.abilities = ability.CloneAll(c.abilities)
	return &cp
}
