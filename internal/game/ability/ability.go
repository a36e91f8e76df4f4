// Package ability defines the contract every game action implements to plug
// its duration, cooldown and stat modification into the engine, plus a
// data-driven implementation loaded from YAML.
package ability

import (
	"github.com/cory-johannsen/anarpg/internal/game/stats"
	"github.com/cory-johannsen/anarpg/internal/game/timing"
)

// Ability is a character ability.
//
// Implementations usually embed Base for the defaults and supply Name and
// Clone themselves. Base provides neither, so a type missing one of them does
// not satisfy Ability.
type Ability interface {
	// Name returns the unique, lowercase name of the ability.
	Name() string
	// ModifyStats adjusts s before the ability is resolved. Base: no-op.
	ModifyStats(s *stats.Stats)
	// Cooldown returns the cooldown coefficients. Base: no cooldown.
	Cooldown() timing.Time
	// Duration returns the time the ability takes to perform. Base: instant.
	Duration() timing.Time
	// Clone returns a copy sharing no mutable state with the receiver.
	Clone() Ability
}

// Base supplies the default behaviour of an Ability: no stat modification, no
// cooldown, instant.
type Base struct{}

// ModifyStats leaves s untouched.
func (Base) ModifyStats(*stats.Stats) {}

// Cooldown returns a zero Time.
func (Base) Cooldown() timing.Time { return timing.New() }

// Duration returns a zero Time.
func (Base) Duration() timing.Time { return timing.New() }

// CloneAll returns a new slice holding a Clone of every ability in as.
//
// Postcondition: len(result) == len(as); result[i] is independent of as[i].
func CloneAll(as []Ability) []Ability {
	if as == nil {
		return nil
	}
	out := make([]Ability, len(as))
	for i, a := range as {
		out[i] = a.Clone()
	}
	return out
}
