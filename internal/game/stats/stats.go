// Package stats defines the attribute set a character acts with and the
// logistic success-probability curve keyed on those attributes.
package stats

// Stats holds the attributes of a character that are used for performing actions.
//
// No invariant ties HP to MaxHP or MP to MaxMP; game logic may push either
// past its maximum.
type Stats struct {
	// Badassness roughly covers strength and constitution: hitting, taking hits.
	Badassness int16 `yaml:"badassness"`
	// Skill roughly covers dexterity and agility: ranged attacks, dodging, precision.
	Skill int16 `yaml:"skill"`
	// Swag roughly covers intelligence and charisma: psychic attacks, resisting
	// magic, looking clever in front of other people.
	Swag int16 `yaml:"swag"`

	HP    int16 `yaml:"hp"`
	MaxHP int16 `yaml:"max_hp"`
	MP    int16 `yaml:"mp"`
	MaxMP int16 `yaml:"max_mp"`

	// Speed multiplies the time actions take. 0.5 halves it.
	Speed float32 `yaml:"speed"`
	// CooldownReduction multiplies ability cooldowns the way Speed multiplies action time.
	CooldownReduction float32 `yaml:"cooldown_reduction"`
}

// New returns the baseline "level 1" attribute set.
//
// Postcondition: attributes are 2, HP/MaxHP/MP/MaxMP are 6, multipliers are 1.0.
func New() Stats {
	return Stats{
		Badassness: 2,
		Skill:      2,
		Swag:       2,

		HP:    6,
		MaxHP: 6,
		MP:    6,
		MaxMP: 6,

		Speed:             1.0,
		CooldownReduction: 1.0,
	}
}

// Zero returns an attribute set with every attribute at zero and both
// multipliers at 1.0, i.e. a character with no attenuation from attributes.
func Zero() Stats {
	return Stats{Speed: 1.0, CooldownReduction: 1.0}
}
