package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/waterguard/prefabs"
)

const maxBossPhase = 3

// Volley is one boss attack tick: every fireball shares the horizontal
// speed and gets one vertical velocity from Offsets.
type Volley struct {
	Speed   float64
	Offsets []float64
}

// Volleys holds the evaluated pattern for each boss phase.
type Volleys struct {
	phases [maxBossPhase]Volley
}

// For returns the volley of phase, clamped to 1..3.
func (v *Volleys) For(phase int) Volley {
	if v == nil {
		v = DefaultVolleys()
	}
	phase = max(1, min(phase, maxBossPhase))
	return v.phases[phase-1]
}

// DefaultVolleys is the built-in pattern used when no script is loaded:
// one straight shot, then a 3-way and a 5-way spread.
func DefaultVolleys() *Volleys {
	return &Volleys{phases: [maxBossPhase]Volley{
		{Speed: 250, Offsets: []float64{0}},
		{Speed: 300, Offsets: []float64{-80, 0, 80}},
		{Speed: 350, Offsets: []float64{-140, -70, 0, 70, 140}},
	}}
}

// LoadVolleys compiles the named volley script from prefabs.
func LoadVolleys(name string) (*Volleys, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("volley: load %s: %w", name, err)
	}
	v, err := CompileVolleys(src)
	if err != nil {
		return nil, fmt.Errorf("volley: %s: %w", name, err)
	}
	return v, nil
}

// CompileVolleys runs the script once per phase. The script receives
// `phase` and must define `speed` and an `offsets` array.
func CompileVolleys(src []byte) (*Volleys, error) {
	script := tengo.NewScript(src)
	if err := script.Add("phase", 1); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	out := &Volleys{}
	for phase := 1; phase <= maxBossPhase; phase++ {
		if err := compiled.Set("phase", phase); err != nil {
			return nil, err
		}
		if err := compiled.Run(); err != nil {
			return nil, fmt.Errorf("phase %d: %w", phase, err)
		}
		if !compiled.IsDefined("speed") || !compiled.IsDefined("offsets") {
			return nil, fmt.Errorf("phase %d: script must define speed and offsets", phase)
		}

		vol := Volley{Speed: compiled.Get("speed").Float()}
		for i, raw := range compiled.Get("offsets").Array() {
			f, ok := toFloat(raw)
			if !ok {
				return nil, fmt.Errorf("phase %d: offsets[%d] is %T, want number", phase, i, raw)
			}
			vol.Offsets = append(vol.Offsets, f)
		}
		if len(vol.Offsets) == 0 {
			return nil, fmt.Errorf("phase %d: empty volley", phase)
		}
		out.phases[phase-1] = vol
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
