package scripting

import (
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/anarpg/internal/game/stats"
	"github.com/cory-johannsen/anarpg/internal/game/timing"
)

// RegisterModules defines the engine global in L:
//
//	engine.probability(value, difficulty) -> number
//	engine.attenuation(x) -> number
//
// Precondition: L must be from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "probability", L.NewFunction(func(L *lua.LState) int {
		v := toInt16(float64(L.CheckNumber(1)))
		d := toInt16(float64(L.CheckNumber(2)))
		L.Push(lua.LNumber(m.curve.Probability(v, d)))
		return 1
	}))
	L.SetField(engine, "attenuation", L.NewFunction(func(L *lua.LState) int {
		x := toInt16(float64(L.CheckNumber(1)))
		L.Push(lua.LNumber(timing.Attenuation(x)))
		return 1
	}))
	L.SetGlobal("engine", engine)
}

// statsTable converts s into a fresh Lua table keyed by snake_case field name.
func statsTable(L *lua.LState, s *stats.Stats) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "badassness", lua.LNumber(s.Badassness))
	L.SetField(t, "skill", lua.LNumber(s.Skill))
	L.SetField(t, "swag", lua.LNumber(s.Swag))
	L.SetField(t, "hp", lua.LNumber(s.HP))
	L.SetField(t, "max_hp", lua.LNumber(s.MaxHP))
	L.SetField(t, "mp", lua.LNumber(s.MP))
	L.SetField(t, "max_mp", lua.LNumber(s.MaxMP))
	L.SetField(t, "speed", lua.LNumber(s.Speed))
	L.SetField(t, "cooldown_reduction", lua.LNumber(s.CooldownReduction))
	return t
}

// readStats copies numeric fields of t back into s. Fields the script removed
// or set to a non-number keep their previous value.
func readStats(L *lua.LState, t *lua.LTable, s *stats.Stats) {
	ints := map[string]*int16{
		"badassness": &s.Badassness,
		"skill":      &s.Skill,
		"swag":       &s.Swag,
		"hp":         &s.HP,
		"max_hp":     &s.MaxHP,
		"mp":         &s.MP,
		"max_mp":     &s.MaxMP,
	}
	for k, p := range ints {
		if n, ok := L.GetField(t, k).(lua.LNumber); ok {
			*p = toInt16(float64(n))
		}
	}
	floats := map[string]*float32{
		"speed":              &s.Speed,
		"cooldown_reduction": &s.CooldownReduction,
	}
	for k, p := range floats {
		if n, ok := L.GetField(t, k).(lua.LNumber); ok {
			*p = float32(n)
		}
	}
}

// toInt16 truncates toward zero and saturates at the int16 bounds. NaN maps to 0.
func toInt16(f float64) int16 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt16:
		return math.MaxInt16
	case f <= math.MinInt16:
		return math.MinInt16
	}
	return int16(f)
}
