package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/phanxgames/tempo"
)

// Config holds everything the tempo command reads from its TOML file.
type Config struct {
	Loop      LoopConfig      `toml:"loop"`
	Strand    StrandConfig    `toml:"strand"`
	Animation AnimationConfig `toml:"animation"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

// LoopConfig controls the event loop.
type LoopConfig struct {
	FrameRate     int      `toml:"frame_rate"`
	IngressBudget Duration `toml:"ingress_budget"`
}

// StrandConfig controls the strand benchmark.
type StrandConfig struct {
	Budget  Duration `toml:"budget"`
	Jobs    int      `toml:"jobs"`
	JobCost Duration `toml:"job_cost"`
}

// AnimationConfig controls the animations shown by run, tui and window.
type AnimationConfig struct {
	Duration Duration `toml:"duration"`
	Hold     Duration `toml:"hold"`
	Easing   string   `toml:"easing"`
	From     float64  `toml:"from"`
	To       float64  `toml:"to"`
	// Easings lists the curves compared side by side in tui and window.
	Easings []string `toml:"easings"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `toml:"addr"` // empty disables the endpoint
}

// Duration is a time.Duration written as a string ("250ms") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Loop: LoopConfig{
			FrameRate:     tempo.DefaultFrameRate,
			IngressBudget: Duration{tempo.DefaultIngressBudget},
		},
		Strand: StrandConfig{
			Budget:  Duration{tempo.DefaultFrameBudget},
			Jobs:    10000,
			JobCost: Duration{50 * time.Microsecond},
		},
		Animation: AnimationConfig{
			Duration: Duration{time.Second},
			Hold:     Duration{250 * time.Millisecond},
			Easing:   "in-out-cubic",
			From:     0,
			To:       1,
			Easings: []string{
				"linear", "in-out-sine", "out-cubic", "in-out-expo",
				"out-back", "out-elastic", "out-bounce",
			},
		},
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("[tempo] config: ignoring unknown key %q", key.String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting tempo cannot run with.
func (c Config) Validate() error {
	if c.Loop.FrameRate <= 0 {
		return fmt.Errorf("loop.frame_rate must be positive, got %d", c.Loop.FrameRate)
	}
	if c.Strand.Jobs < 0 {
		return fmt.Errorf("strand.jobs must not be negative, got %d", c.Strand.Jobs)
	}
	if c.Animation.Duration.Duration < 0 || c.Animation.Hold.Duration < 0 {
		return fmt.Errorf("animation durations must not be negative")
	}
	if _, err := tempo.EasingByName(c.Animation.Easing); err != nil {
		return fmt.Errorf("animation.easing: %w", err)
	}
	for _, name := range c.Animation.Easings {
		if _, err := tempo.EasingByName(name); err != nil {
			return fmt.Errorf("animation.easings: %w", err)
		}
	}
	return nil
}

// newRuntime builds a runtime from the loop and strand settings.
func (c Config) newRuntime(opts ...tempo.LoopOption) *tempo.Runtime {
	opts = append([]tempo.LoopOption{
		tempo.WithFrameRate(c.Loop.FrameRate),
		tempo.WithIngressBudget(c.Loop.IngressBudget.Duration),
	}, opts...)
	return tempo.NewRuntime(tempo.NewLoop(opts...), tempo.WithFrameBudget(c.Strand.Budget.Duration))
}
