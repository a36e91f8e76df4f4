// Package timing computes how long an action takes and how long it stays on
// cooldown once a character's attributes have attenuated it.
package timing

import (
	"fmt"
	"math"
	"strings"

	"github.com/cory-johannsen/anarpg/internal/game/stats"
)

// decay is the factor each attribute point applies to its coefficient.
const decay = 0.95

// Time is a mix of a fixed part and parts reduced by the character's
// attributes. The same coefficients feed both Cooldown and Duration; the
// result differs only by the multiplier taken from Stats.
//
// The zero value is a free, instant action.
type Time struct {
	// Fixed is never reduced by attributes, e.g. the time a gun takes to
	// eject a bullet.
	Fixed float32 `yaml:"fixed"`
	// Variable is carried for content that sets it but is not part of
	// either formula.
	Variable float32 `yaml:"variable"`
	// Badassness is reduced by having more badassness, e.g. getting ready to punch again.
	Badassness float32 `yaml:"badassness"`
	// Skill is reduced by having more skill, e.g. aiming again.
	Skill float32 `yaml:"skill"`
	// Swag is reduced by having more swag, e.g. readying another spell.
	Swag float32 `yaml:"swag"`
}

// New returns an all-zero Time.
func New() Time {
	return Time{}
}

// WithFixed returns a copy of t with the fixed part set.
func (t Time) WithFixed(fixed float32) Time {
	t.Fixed = fixed
	return t
}

// WithVariable returns a copy of t with the variable part set.
func (t Time) WithVariable(variable float32) Time {
	t.Variable = variable
	return t
}

// WithBadassness returns a copy of t with the badassness part set.
func (t Time) WithBadassness(badassness float32) Time {
	t.Badassness = badassness
	return t
}

// WithSkill returns a copy of t with the skill part set.
func (t Time) WithSkill(skill float32) Time {
	t.Skill = skill
	return t
}

// WithSwag returns a copy of t with the swag part set.
func (t Time) WithSwag(swag float32) Time {
	t.Swag = swag
	return t
}

// Cooldown returns the cooldown after reduction by s.
//
// Postcondition: s.CooldownReduction * (Fixed + sum(coefficient * Attenuation(attribute))).
func (t Time) Cooldown(s stats.Stats) float32 {
	return s.CooldownReduction * t.base(s)
}

// Duration returns the time the action takes after reduction by s.
//
// Postcondition: s.Speed * (Fixed + sum(coefficient * Attenuation(attribute))).
func (t Time) Duration(s stats.Stats) float32 {
	return s.Speed * t.base(s)
}

// base skips zero coefficients so that an attribute whose attenuation
// overflows to +Inf contributes 0 rather than NaN.
func (t Time) base(s stats.Stats) float32 {
	return t.Fixed +
		term(t.Badassness, s.Badassness) +
		term(t.Skill, s.Skill) +
		term(t.Swag, s.Swag)
}

func term(coefficient float32, attribute int16) float32 {
	if coefficient == 0 {
		return 0
	}
	return coefficient * Attenuation(attribute)
}

// IsZero reports whether every coefficient is zero.
func (t Time) IsZero() bool {
	return t == Time{}
}

// Validate reports coefficients that are NaN or infinite. Cooldown and
// Duration never call it; loaders do.
func (t Time) Validate() error {
	fields := []struct {
		name string
		v    float32
	}{
		{"fixed", t.Fixed},
		{"variable", t.Variable},
		{"badassness", t.Badassness},
		{"skill", t.Skill},
		{"swag", t.Swag},
	}
	var bad []string
	for _, f := range fields {
		v := float64(f.v)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, fmt.Sprintf("%s is %v", f.name, f.v))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("timing: non-finite coefficients: %s", strings.Join(bad, "; "))
	}
	return nil
}

// Attenuation converts an attribute value into the factor applied to its
// coefficient: 0.95^x. It is 1 at zero, shrinks toward 0 as x grows and grows
// without bound as x goes negative.
func Attenuation(x int16) float32 {
	return float32(math.Pow(decay, float64(x)))
}
