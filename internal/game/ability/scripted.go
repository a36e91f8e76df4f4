package ability

import (
	"github.com/cory-johannsen/anarpg/internal/game/stats"
	"github.com/cory-johannsen/anarpg/internal/game/timing"
)

// Hooks runs named stat-modifier scripts. scripting.Manager implements it.
//
// Implementations must not carry state from one call to the next: Clone
// shares the runner between an ability and its copies, so any per-call state
// would couple them.
type Hooks interface {
	// ModifyStats runs the hook against s in place. An undefined hook is a no-op.
	ModifyStats(hook string, s *stats.Stats) error
}

// Scripted is an Ability backed by a Definition. Its stat modification adds
// the definition's modifiers, applies its multipliers, then runs the
// definition's Lua hook if one is named.
type Scripted struct {
	def   *Definition
	hooks Hooks
}

// NewScripted returns a Scripted ability owning a private copy of def.
//
// Precondition: def must not be nil.
func NewScripted(def *Definition, hooks Hooks) *Scripted {
	return &Scripted{def: def.clone(), hooks: hooks}
}

// Name returns the definition ID.
func (a *Scripted) Name() string { return a.def.ID }

// Title returns the display name, falling back to the ID.
func (a *Scripted) Title() string {
	if a.def.Name == "" {
		return a.def.ID
	}
	return a.def.Name
}

// Description returns the definition's description text.
func (a *Scripted) Description() string { return a.def.Description }

// Cooldown returns the definition's cooldown coefficients.
func (a *Scripted) Cooldown() timing.Time { return a.def.Cooldown }

// Duration returns the definition's duration coefficients.
func (a *Scripted) Duration() timing.Time { return a.def.Duration }

// ModifyStats applies modifiers, multipliers and the Lua hook to s.
func (a *Scripted) ModifyStats(s *stats.Stats) {
	a.def.apply(s)
	if a.def.LuaModifier == "" || a.hooks == nil {
		return
	}
	// Script failures are logged by the hook runner; s keeps the changes
	// applied so far.
	_ = a.hooks.ModifyStats(a.def.LuaModifier, s)
}

// SetModifier sets the delta applied to attribute by ModifyStats. Unknown
// attribute keys are ignored by ModifyStats.
func (a *Scripted) SetModifier(attribute string, delta int) {
	if a.def.Modifiers == nil {
		a.def.Modifiers = make(map[string]int)
	}
	a.def.Modifiers[attribute] = delta
}

// Clone returns a Scripted with its own copy of the definition. The hook
// runner is shared; Hooks implementations are stateless between calls.
func (a *Scripted) Clone() Ability {
	return &Scripted{def: a.def.clone(), hooks: a.hooks}
}

var _ Ability = (*Scripted)(nil)
