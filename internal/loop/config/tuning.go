package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	envconfig "github.com/tomz197/slalom/internal/config"
)

// TuningFileEnv names the environment variable holding the path of a tuning file.
const TuningFileEnv = "SLALOM_TUNING"

// ErrInvalidTuning is returned (wrapped) when a tuning file holds unusable values.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds every gameplay constant. Depths are in world units along the slope,
// lateral positions are in [-1, 1] across it.
type Tuning struct {
	Gates  GateTuning   `toml:"gates"`
	Trees  TreeTuning   `toml:"trees"`
	Player PlayerTuning `toml:"player"`
	Camera CameraTuning `toml:"camera"`
}

// GateTuning describes the gate course and how gates are scored.
type GateTuning struct {
	Count        int     `toml:"count"`
	FirstDepth   float64 `toml:"first_depth"`
	Spacing      float64 `toml:"spacing"`
	LateralRange float64 `toml:"lateral_range"` // Gates spawn in [-range, range]
	CaptureNear  float64 `toml:"capture_near"`
	CaptureFar   float64 `toml:"capture_far"`
	Tolerance    float64 `toml:"tolerance"` // Max lateral distance for a hit
	HitBonus     float64 `toml:"hit_bonus"`
	MissPenalty  float64 `toml:"miss_penalty"`
	FinishDepth  float64 `toml:"finish_depth"`  // Run ends when the final gate is nearer than this
	FinishOffset float64 `toml:"finish_offset"` // Finish line distance behind the final gate
}

// TreeTuning describes the decorative tree rows along the slope.
type TreeTuning struct {
	Count        int     `toml:"count"`
	FirstDepth   float64 `toml:"first_depth"`
	Spacing      float64 `toml:"spacing"`
	LateralRange float64 `toml:"lateral_range"`
	SideOffset   float64 `toml:"side_offset"` // Pushes trees off the piste
}

// PlayerTuning controls steering and the skating reward.
type PlayerTuning struct {
	Depth           float64 `toml:"depth"` // Where the skier stands on the slope
	Step            float64 `toml:"step"`  // Lateral nudge per key press
	ScrollRate      float64 `toml:"scroll_rate"`
	AlternateBonus  float64 `toml:"alternate_bonus"`
	RepeatPenalty   float64 `toml:"repeat_penalty"`
	BalanceMax      float64 `toml:"balance_max"`
	BalancePenalty  float64 `toml:"balance_penalty"`
	BalanceRecovery float64 `toml:"balance_recovery"`
}

// CameraTuning controls the perspective projection and sprite sizes.
// Sizes are fractions of the surface width (or height, for thicknesses).
type CameraTuning struct {
	FOV         float64 `toml:"fov"`     // Depth coefficient k in 1/(z*k + epsilon)
	Epsilon     float64 `toml:"epsilon"` // Keeps the projection finite at depth 0
	NearDepth   float64 `toml:"near_depth"`
	LateralSpan float64 `toml:"lateral_span"`
	Horizon     float64 `toml:"horizon"`
	Lift        float64 `toml:"lift"`

	TreeSize        float64 `toml:"tree_size"`
	GateThickness   float64 `toml:"gate_thickness"`
	FinishThickness float64 `toml:"finish_thickness"`
	SkierSize       float64 `toml:"skier_size"`
}

// DefaultTuning returns the stock course.
func DefaultTuning() Tuning {
	return Tuning{
		Gates: GateTuning{
			Count:        15,
			FirstDepth:   600,
			Spacing:      250,
			LateralRange: 0.8,
			CaptureNear:  120,
			CaptureFar:   150,
			Tolerance:    0.25,
			HitBonus:     1.5,
			MissPenalty:  2,
			FinishDepth:  120,
			FinishOffset: 200,
		},
		Trees: TreeTuning{
			Count:        40,
			FirstDepth:   400,
			Spacing:      200,
			LateralRange: 1,
			SideOffset:   1.2,
		},
		Player: PlayerTuning{
			Depth:           80,
			Step:            0.02,
			ScrollRate:      1,
			AlternateBonus:  2,
			RepeatPenalty:   2,
			BalanceMax:      100,
			BalancePenalty:  10,
			BalanceRecovery: 5,
		},
		Camera: CameraTuning{
			FOV:             0.01,
			Epsilon:         0.0001,
			NearDepth:       20,
			LateralSpan:     0.4,
			Horizon:         0.3,
			Lift:            0.75,
			TreeSize:        0.08,
			GateThickness:   0.015,
			FinishThickness: 0.01,
			SkierSize:       0.04,
		},
	}
}

// LoadTuning reads a TOML file on top of DefaultTuning. Keys absent from the
// file keep their default values.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Tuning{}, fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Tuning{}, fmt.Errorf("%w: unknown keys %v in %s", ErrInvalidTuning, undecoded, path)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadTuningFromEnv loads the file named by SLALOM_TUNING, or returns the
// defaults when the variable is unset.
func LoadTuningFromEnv() (Tuning, error) {
	path := envconfig.GetEnv(TuningFileEnv, "")
	if path == "" {
		return DefaultTuning(), nil
	}
	return LoadTuning(path)
}

// Validate reports every value that would break the game.
func (t Tuning) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidTuning}, args...)...))
		}
	}

	g := t.Gates
	check(g.Count > 0, "gates.count must be positive, got %d", g.Count)
	check(g.Spacing > 0, "gates.spacing must be positive, got %g", g.Spacing)
	check(g.LateralRange > 0 && g.LateralRange <= 1, "gates.lateral_range must be in (0, 1], got %g", g.LateralRange)
	check(g.CaptureNear < g.CaptureFar, "gates.capture_near (%g) must be below capture_far (%g)", g.CaptureNear, g.CaptureFar)
	check(g.FirstDepth > g.CaptureFar, "gates.first_depth (%g) must be beyond capture_far (%g)", g.FirstDepth, g.CaptureFar)
	check(g.Tolerance > 0, "gates.tolerance must be positive, got %g", g.Tolerance)
	check(g.HitBonus >= 0 && g.MissPenalty >= 0, "gates bonus and penalty must not be negative")
	check(g.FinishDepth >= 0, "gates.finish_depth must not be negative, got %g", g.FinishDepth)

	tr := t.Trees
	check(tr.Count >= 0, "trees.count must not be negative, got %d", tr.Count)
	check(tr.Count == 0 || tr.Spacing > 0, "trees.spacing must be positive, got %g", tr.Spacing)
	check(tr.LateralRange >= 0 && tr.LateralRange <= 1, "trees.lateral_range must be in [0, 1], got %g", tr.LateralRange)

	p := t.Player
	check(p.Step > 0 && p.Step <= 1, "player.step must be in (0, 1], got %g", p.Step)
	check(p.ScrollRate > 0, "player.scroll_rate must be positive, got %g", p.ScrollRate)
	check(p.AlternateBonus >= 0 && p.RepeatPenalty >= 0, "player bonus and penalty must not be negative")
	check(p.BalanceMax > 0, "player.balance_max must be positive, got %g", p.BalanceMax)
	check(p.BalancePenalty >= 0 && p.BalanceRecovery >= 0, "player balance changes must not be negative")

	c := t.Camera
	check(c.FOV > 0, "camera.fov must be positive, got %g", c.FOV)
	check(c.Epsilon > 0, "camera.epsilon must be positive, got %g", c.Epsilon)
	check(c.Horizon >= 0 && c.Horizon < 1, "camera.horizon must be in [0, 1), got %g", c.Horizon)

	return errors.Join(errs...)
}
