// Package action composes a character, one of its abilities and the engine
// formulas into a single estimate of what using the ability would look like.
package action

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/anarpg/internal/game/character"
	"github.com/cory-johannsen/anarpg/internal/game/stats"
)

// Attribute names the stat that gates an action's success.
type Attribute int

const (
	Badassness Attribute = iota
	Skill
	Swag
)

var (
	// ErrUnknownAbility is returned when the character lacks the requested ability.
	ErrUnknownAbility = errors.New("unknown ability")
	// ErrUnknownAttribute is returned for an Attribute outside the defined set.
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// String returns the lowercase attribute name.
func (a Attribute) String() string {
	switch a {
	case Badassness:
		return "badassness"
	case Skill:
		return "skill"
	case Swag:
		return "swag"
	default:
		return fmt.Sprintf("attribute(%d)", int(a))
	}
}

// ParseAttribute maps a case-insensitive attribute name to an Attribute.
func ParseAttribute(name string) (Attribute, error) {
	switch strings.ToLower(name) {
	case "badassness":
		return Badassness, nil
	case "skill":
		return Skill, nil
	case "swag":
		return Swag, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
}

// value returns the attribute's value in s.
func (a Attribute) value(s stats.Stats) (int16, error) {
	switch a {
	case Badassness:
		return s.Badassness, nil
	case Skill:
		return s.Skill, nil
	case Swag:
		return s.Swag, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownAttribute, a)
}

// Request describes a prospective use of an ability.
type Request struct {
	Ability    string
	Attribute  Attribute
	Difficulty int16
}

// Estimate is the outcome of planning a Request. The caller compares
// Probability against its own random draw.
type Estimate struct {
	Ability     string
	Stats       stats.Stats // stats after the ability's modifier
	Probability float32
	Duration    float32
	Cooldown    float32
}

// Planner computes Estimates. It holds no per-character state.
type Planner struct {
	curve  stats.Curve
	logger *zap.Logger
}

// NewPlanner returns a Planner using curve for success probabilities.
//
// Precondition: logger must be non-nil.
func NewPlanner(curve stats.Curve, logger *zap.Logger) *Planner {
	if logger == nil {
		panic("action.NewPlanner: logger must not be nil")
	}
	return &Planner{curve: curve, logger: logger}
}

// Plan applies the named ability's modifier to a copy of c's stats and
// evaluates probability, duration and cooldown against that copy.
//
// Precondition: c must not be nil.
// Postcondition: c is not modified. Returns an Estimate, or an error wrapping
// ErrUnknownAbility or ErrUnknownAttribute.
func (p *Planner) Plan(c *character.Character, req Request) (Estimate, error) {
	a, ok := c.Ability(req.Ability)
	if !ok {
		return Estimate{}, fmt.Errorf("%w: %q for character %q", ErrUnknownAbility, req.Ability, c.Name)
	}
	s, _ := c.EffectiveStats(req.Ability)

	v, err := req.Attribute.value(s)
	if err != nil {
		return Estimate{}, err
	}
	est := Estimate{
		Ability:     a.Name(),
		Stats:       s,
		Probability: p.curve.Probability(v, req.Difficulty),
		Duration:    a.Duration().Duration(s),
		Cooldown:    a.Cooldown().Cooldown(s),
	}
	p.logger.Debug("action planned",
		zap.String("character", c.Name),
		zap.String("ability", est.Ability),
		zap.Stringer("attribute", req.Attribute),
		zap.Int16("value", v),
		zap.Int16("difficulty", req.Difficulty),
		zap.Float32("probability", est.Probability),
		zap.Float32("duration", est.Duration),
		zap.Float32("cooldown", est.Cooldown),
	)
	return est, nil
}

// PlanAll plans every ability of c against the same attribute and difficulty,
// in the character's ability order.
func (p *Planner) PlanAll(c *character.Character, attr Attribute, difficulty int16) ([]Estimate, error) {
	as := c.Abilities()
	out := make([]Estimate, 0, len(as))
	for _, a := range as {
		est, err := p.Plan(c, Request{Ability: a.Name(), Attribute: attr, Difficulty: difficulty})
		if err != nil {
			return nil, err
		}
		out = append(out, est)
	}
	return out, nil
}
