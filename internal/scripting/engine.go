package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for tunable gameplay rules.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under scriptsDir.
// Core scripts load first, then the rule directories.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	for _, sub := range []string{"core", "combat", "spawn"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory. Missing directories are skipped.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DamageContext describes one combustion contact.
type DamageContext struct {
	SourceTag     string
	TargetTag     string
	TargetHP      int
	TargetMaxHP   int
	BaseDamage    int
	ImpactDepth   float64 // MTV magnitude of the contact
	ImpactUpwards bool
}

// CalcCombustionDamage calls the Lua calc_combustion_damage function.
// Falls back to ctx.BaseDamage if the script is missing or misbehaves.
func (e *Engine) CalcCombustionDamage(ctx DamageContext) int {
	fn := e.vm.GetGlobal("calc_combustion_damage")
	if fn == lua.LNil {
		return ctx.BaseDamage
	}

	t := e.vm.NewTable()
	src := e.vm.NewTable()
	src.RawSetString("tag", lua.LString(ctx.SourceTag))
	t.RawSetString("source", src)

	tgt := e.vm.NewTable()
	tgt.RawSetString("tag", lua.LString(ctx.TargetTag))
	tgt.RawSetString("hp", lua.LNumber(ctx.TargetHP))
	tgt.RawSetString("max_hp", lua.LNumber(ctx.TargetMaxHP))
	t.RawSetString("target", tgt)

	t.RawSetString("base_damage", lua.LNumber(ctx.BaseDamage))
	t.RawSetString("depth", lua.LNumber(ctx.ImpactDepth))
	t.RawSetString("upwards", lua.LBool(ctx.ImpactUpwards))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_combustion_damage error", zap.Error(err))
		return ctx.BaseDamage
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	switch r := result.(type) {
	case lua.LNumber:
		return int(r)
	case *lua.LTable:
		return lInt(r, "amount")
	default:
		e.log.Error("lua calc_combustion_damage returned unexpected type",
			zap.String("type", result.Type().String()))
		return ctx.BaseDamage
	}
}

// KindOverride asks the optional Lua resolve_attack_kind function which
// spawn kind an attack action should fire. Returns fallback when undefined.
func (e *Engine) KindOverride(action string, fallback string) string {
	fn := e.vm.GetGlobal("resolve_attack_kind")
	if fn == lua.LNil {
		return fallback
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(action), lua.LString(fallback)); err != nil {
		e.log.Error("lua resolve_attack_kind error", zap.Error(err))
		return fallback
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	if s, ok := result.(lua.LString); ok && s != "" {
		return string(s)
	}
	return fallback
}

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
