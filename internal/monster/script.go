package monster

import (
	"embed"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// DefaultScript is the embedded policy used when no script path is given.
const DefaultScript = "skeleton.tengo"

// LoadScript reads a decision script from disk, falling back to the embedded
// copy with the same base name.
func LoadScript(name string) ([]byte, error) {
	if name == "" {
		name = DefaultScript
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	base := path.Base(filepath.ToSlash(name))
	data, err := ScriptsFS.ReadFile("scripts/" + base)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	return data, nil
}

// ScriptDecider runs a tengo script each frame. The script reads distance,
// sight_range, attack_range, cooldown_ready, attacking and player_alive and
// assigns decision. Any failure falls back to RuleDecider for that frame.
type ScriptDecider struct {
	Name     string
	Logf     func(format string, args ...any)
	compiled *tengo.Compiled
	fallback RuleDecider
	lastErr  string
}

// NewScriptDecider compiles src.
func NewScriptDecider(name string, src []byte) (*ScriptDecider, error) {
	script := tengo.NewScript(src)
	_ = script.Add("distance", 0.0)
	_ = script.Add("sight_range", 0.0)
	_ = script.Add("attack_range", 0.0)
	_ = script.Add("cooldown_ready", false)
	_ = script.Add("attacking", false)
	_ = script.Add("player_alive", false)
	_ = script.Add("decision", "")

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return &ScriptDecider{Name: name, Logf: log.Printf, compiled: compiled}, nil
}

// LoadScriptDecider loads and compiles the named script.
func LoadScriptDecider(name string) (*ScriptDecider, error) {
	src, err := LoadScript(name)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultScript
	}
	return NewScriptDecider(name, src)
}

// Clone returns an independent decider sharing the compiled bytecode, so
// each enemy keeps its own globals.
func (sd *ScriptDecider) Clone() *ScriptDecider {
	return &ScriptDecider{Name: sd.Name, Logf: sd.Logf, compiled: sd.compiled.Clone()}
}

func (sd *ScriptDecider) Decide(ctx Context) Decision {
	d, err := sd.run(ctx)
	if err != nil {
		if msg := err.Error(); msg != sd.lastErr {
			sd.lastErr = msg
			if sd.Logf != nil {
				sd.Logf("monster: script %s failed, using built-in rules: %v", sd.Name, err)
			}
		}
		return sd.fallback.Decide(ctx)
	}
	sd.lastErr = ""
	return d
}

func (sd *ScriptDecider) run(ctx Context) (Decision, error) {
	vars := map[string]any{
		"distance":       ctx.Distance,
		"sight_range":    ctx.SightRange,
		"attack_range":   ctx.AttackRange,
		"cooldown_ready": ctx.CooldownReady,
		"attacking":      ctx.Attacking,
		"player_alive":   ctx.PlayerAlive,
		"decision":       "",
	}
	for k, v := range vars {
		if err := sd.compiled.Set(k, v); err != nil {
			return DecideIdle, err
		}
	}
	if err := sd.compiled.Run(); err != nil {
		return DecideIdle, err
	}
	name := strings.TrimSpace(sd.compiled.Get("decision").String())
	if name == "" {
		return DecideIdle, fmt.Errorf("script did not assign decision")
	}
	return ParseDecision(name)
}
