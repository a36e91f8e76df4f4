package ability

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/anarpg/internal/game/stats"
	"github.com/cory-johannsen/anarpg/internal/game/timing"
)

// Attribute keys accepted in Definition.Modifiers.
var modifierKeys = map[string]bool{
	"badassness": true, "skill": true, "swag": true,
	"hp": true, "max_hp": true, "mp": true, "max_mp": true,
}

// Multiplier keys accepted in Definition.Multipliers.
var multiplierKeys = map[string]bool{"speed": true, "cooldown_reduction": true}

// Definition is the static description of a data-driven ability, loaded from YAML.
type Definition struct {
	ID          string             `yaml:"id"`           // unique, lowercase; becomes Ability.Name
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Cooldown    timing.Time        `yaml:"cooldown"`
	Duration    timing.Time        `yaml:"duration"`
	Modifiers   map[string]int     `yaml:"modifiers"`    // attribute deltas applied by ModifyStats
	Multipliers map[string]float32 `yaml:"multipliers"`  // speed / cooldown_reduction factors
	LuaModifier string             `yaml:"lua_modifier"` // global Lua function run after Modifiers
}

// Validate checks that the definition can back an Ability.
//
// Postcondition: Returns nil, or an error describing every violation.
func (d *Definition) Validate() error {
	var errs []string
	if d.ID == "" {
		errs = append(errs, "id must not be empty")
	} else if d.ID != strings.ToLower(d.ID) {
		errs = append(errs, fmt.Sprintf("id %q must be lowercase", d.ID))
	}
	if err := d.Cooldown.Validate(); err != nil {
		errs = append(errs, "cooldown: "+err.Error())
	}
	if err := d.Duration.Validate(); err != nil {
		errs = append(errs, "duration: "+err.Error())
	}
	for _, k := range sortedKeys(d.Modifiers) {
		if !modifierKeys[k] {
			errs = append(errs, fmt.Sprintf("unknown modifier %q", k))
		}
	}
	for _, k := range sortedKeys(d.Multipliers) {
		if !multiplierKeys[k] {
			errs = append(errs, fmt.Sprintf("unknown multiplier %q", k))
		}
		v := float64(d.Multipliers[k])
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Sprintf("multiplier %q is %v", k, v))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("ability %q: %s", d.ID, strings.Join(errs, "; "))
	}
	return nil
}

// clone returns a deep copy of d.
func (d *Definition) clone() *Definition {
	c := *d
	if d.Modifiers != nil {
		c.Modifiers = make(map[string]int, len(d.Modifiers))
		for k, v := range d.Modifiers {
			c.Modifiers[k] = v
		}
	}
	if d.Multipliers != nil {
		c.Multipliers = make(map[string]float32, len(d.Multipliers))
		for k, v := range d.Multipliers {
			c.Multipliers[k] = v
		}
	}
	return &c
}

// apply adds the attribute deltas and multiplies the multipliers into s.
func (d *Definition) apply(s *stats.Stats) {
	for k, delta := range d.Modifiers {
		switch k {
		case "badassness":
			s.Badassness = addClamped(s.Badassness, delta)
		case "skill":
			s.Skill = addClamped(s.Skill, delta)
		case "swag":
			s.Swag = addClamped(s.Swag, delta)
		case "hp":
			s.HP = addClamped(s.HP, delta)
		case "max_hp":
			s.MaxHP = addClamped(s.MaxHP, delta)
		case "mp":
			s.MP = addClamped(s.MP, delta)
		case "max_mp":
			s.MaxMP = addClamped(s.MaxMP, delta)
		}
	}
	for k, f := range d.Multipliers {
		switch k {
		case "speed":
			s.Speed *= f
		case "cooldown_reduction":
			s.CooldownReduction *= f
		}
	}
}

func addClamped(v int16, delta int) int16 {
	n := int(v) + delta
	if n > math.MaxInt16 {
		return math.MaxInt16
	}
	if n < math.MinInt16 {
		return math.MinInt16
	}
	return int16(n)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrDuplicateID is returned when two definitions share an ID.
var ErrDuplicateID = errors.New("duplicate ability id")

// LoadDirectory reads every *.yaml file in dir in lexicographic order, parses
// each as a Definition, and returns a populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to
// read, parse, validate, or repeats an ID.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading ability dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	// os.ReadDir returns entries sorted by filename.
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Definition
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := reg.Register(&def); err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
	}
	return reg, nil
}
