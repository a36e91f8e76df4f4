package ability_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/anarpg/internal/game/ability"
	"github.com/cory-johannsen/anarpg/internal/game/stats"
	"github.com/cory-johannsen/anarpg/internal/game/timing"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

type recordingHooks struct {
	calls []string
	err   error
}

// ModifyStats follows scripting.Manager: s is only changed when the hook succeeds.
func (h *recordingHooks) ModifyStats(hook string, s *stats.Stats) error {
	h.calls = append(h.calls, hook)
	if h.err != nil {
		return h.err
	}
	s.Swag += 10
	return nil
}

func TestLoadDirectory_ParsesDefinitions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "punch.yaml", `
id: punch
name: Punch
description: A solid hit.
cooldown:
  fixed: 0.5
  badassness: 1.0
duration:
  fixed: 0.2
  skill: 0.3
modifiers:
  badassness: 1
multipliers:
  speed: 0.9
`)
	writeFile(t, dir, "aim.yaml", `
id: aim
name: Aim
duration:
  skill: 2.0
`)
	writeFile(t, dir, "notes.txt", "ignored")

	reg, err := ability.LoadDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "aim", all[0].ID)
	assert.Equal(t, "punch", all[1].ID)

	punch, ok := reg.Get("punch")
	require.True(t, ok)
	assert.Equal(t, timing.Time{Fixed: 0.5, Badassness: 1.0}, punch.Cooldown)
	assert.Equal(t, timing.Time{Fixed: 0.2, Skill: 0.3}, punch.Duration)
	assert.Equal(t, map[string]int{"badassness": 1}, punch.Modifiers)
	assert.Equal(t, map[string]float32{"speed": 0.9}, punch.Multipliers)
}

func TestLoadDirectory_UnknownFieldFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "id: bad\ncolour: red\n")
	_, err := ability.LoadDirectory(dir)
	require.Error(t, err)
}

func TestLoadDirectory_DuplicateIDFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "id: punch\n")
	writeFile(t, dir, "b.yaml", "id: punch\n")
	_, err := ability.LoadDirectory(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ability.ErrDuplicateID))
}

func TestLoadDirectory_MissingDir(t *testing.T) {
	_, err := ability.LoadDirectory("/nonexistent/abilities")
	assert.Error(t, err)
}

func TestDefinitionValidate(t *testing.T) {
	cases := []struct {
		name string
		def  ability.Definition
	}{
		{"empty id", ability.Definition{}},
		{"uppercase id", ability.Definition{ID: "Punch"}},
		{"unknown modifier", ability.Definition{ID: "x", Modifiers: map[string]int{"luck": 1}}},
		{"unknown multiplier", ability.Definition{ID: "x", Multipliers: map[string]float32{"haste": 1}}},
		{"nan multiplier", ability.Definition{ID: "x", Multipliers: map[string]float32{"speed": float32(math.NaN())}}},
		{"inf cooldown", ability.Definition{ID: "x", Cooldown: timing.Time{Fixed: float32(math.Inf(1))}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.def.Validate())
		})
	}
	ok := ability.Definition{ID: "ok", Modifiers: map[string]int{"hp": -1}, Multipliers: map[string]float32{"cooldown_reduction": 0.5}}
	assert.NoError(t, ok.Validate())
}

func TestRegistry_NewUnknown(t *testing.T) {
	reg := ability.NewRegistry()
	_, err := reg.New("ghost", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ability.ErrUnknownID))
}

func TestRegistry_RegisterNil(t *testing.T) {
	assert.Error(t, ability.NewRegistry().Register(nil))
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	reg := ability.NewRegistry()
	def := &ability.Definition{ID: "kick", Modifiers: map[string]int{"badassness": 1}}
	require.NoError(t, reg.Register(def))
	def.ID = "changed"
	def.Modifiers["badassness"] = 9

	got, ok := reg.Get("kick")
	require.True(t, ok)
	got.ID = "KICK"
	got.Modifiers["badassness"] = 50
	got.Cooldown = timing.New().WithFixed(float32(math.NaN()))
	reg.All()[0].Modifiers["badassness"] = 70

	again, ok := reg.Get("kick")
	require.True(t, ok)
	assert.Equal(t, "kick", again.ID)
	assert.Equal(t, map[string]int{"badassness": 1}, again.Modifiers)
	assert.NoError(t, again.Validate())

	a, err := reg.New("kick", nil)
	require.NoError(t, err)
	s := stats.New()
	a.ModifyStats(&s)
	assert.Equal(t, int16(3), s.Badassness)
}

func TestScripted_ModifyStats(t *testing.T) {
	reg := ability.NewRegistry()
	require.NoError(t, reg.Register(&ability.Definition{
		ID:          "focus",
		Modifiers:   map[string]int{"skill": 3, "mp": -2},
		Multipliers: map[string]float32{"speed": 0.5, "cooldown_reduction": 2},
	}))
	a, err := reg.New("focus", nil)
	require.NoError(t, err)
	assert.Equal(t, "focus", a.Name())

	s := stats.New()
	a.ModifyStats(&s)
	assert.Equal(t, int16(5), s.Skill)
	assert.Equal(t, int16(4), s.MP)
	assert.Equal(t, float32(0.5), s.Speed)
	assert.Equal(t, float32(2), s.CooldownReduction)
}

func TestScripted_ModifyStats_Clamps(t *testing.T) {
	a := ability.NewScripted(&ability.Definition{ID: "surge", Modifiers: map[string]int{"hp": 100000}}, nil)
	s := stats.New()
	a.ModifyStats(&s)
	assert.Equal(t, int16(math.MaxInt16), s.HP)
}

func TestScripted_RunsLuaHookAfterModifiers(t *testing.T) {
	hooks := &recordingHooks{}
	a := ability.NewScripted(&ability.Definition{ID: "charm", Modifiers: map[string]int{"swag": 1}, LuaModifier: "charm_mod"}, hooks)
	s := stats.New()
	a.ModifyStats(&s)
	assert.Equal(t, []string{"charm_mod"}, hooks.calls)
	assert.Equal(t, int16(13), s.Swag)
}

func TestScripted_FailingHookKeepsModifiers(t *testing.T) {
	hooks := &recordingHooks{err: errors.New("boom")}
	a := ability.NewScripted(&ability.Definition{ID: "charm", Modifiers: map[string]int{"swag": 1}, LuaModifier: "charm_mod"}, hooks)
	s := stats.New()
	a.ModifyStats(&s)
	assert.Equal(t, []string{"charm_mod"}, hooks.calls)
	assert.Equal(t, int16(3), s.Swag)
}

func TestScripted_TitleFallsBackToID(t *testing.T) {
	a := ability.NewScripted(&ability.Definition{ID: "aim"}, nil)
	assert.Equal(t, "aim", a.Title())
	b := ability.NewScripted(&ability.Definition{ID: "aim", Name: "Aim", Description: "Steady."}, nil)
	assert.Equal(t, "Aim", b.Title())
	assert.Equal(t, "Steady.", b.Description())
}

func TestScripted_OwnsDefinitionCopy(t *testing.T) {
	def := &ability.Definition{ID: "kick", Modifiers: map[string]int{"badassness": 1}}
	a := ability.NewScripted(def, nil)
	def.Modifiers["badassness"] = 50

	s := stats.New()
	a.ModifyStats(&s)
	assert.Equal(t, int16(3), s.Badassness)
}

// Property: mutating a clone's modifiers never changes the source.
func TestPropertyScriptedClone_Independent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		orig := rapid.IntRange(-10, 10).Draw(rt, "orig")
		changed := rapid.IntRange(-10, 10).Draw(rt, "changed")
		a := ability.NewScripted(&ability.Definition{ID: "kick", Modifiers: map[string]int{"badassness": orig}}, nil)
		c := a.Clone().(*ability.Scripted)
		c.SetModifier("badassness", changed)

		s := stats.Zero()
		a.ModifyStats(&s)
		if int(s.Badassness) != orig {
			rt.Fatalf("source badassness = %d, want %d", s.Badassness, orig)
		}
		s = stats.Zero()
		c.ModifyStats(&s)
		if int(s.Badassness) != changed {
			rt.Fatalf("clone badassness = %d, want %d", s.Badassness, changed)
		}
	})
}
