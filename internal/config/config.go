// Package config loads and saves the YAML configuration driving a
// rod-constraint run: numeric policy knobs (separation buffers, wall
// placement), solver tolerances, and the fluid viscosity the mobility
// operator is built from.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt                       = 0.01
	DefaultRes                      = 1e-6
	DefaultMaxIte                   = 500
	DefaultViscosity                = 1.0
	DefaultSeparationBufferContacts = 0.0
	DefaultSeparationBufferLinkages = 0.05
	DefaultLinkKappa                = 100.0
)

// Config is the full set of knobs spec.md §6 names as "configuration
// options recognised", plus the solver tolerances spec.md §4.5/§4.6 needs.
type Config struct {
	Dt        float64 `yaml:"dt"`
	Res       float64 `yaml:"res"`
	MaxIte    int     `yaml:"max_ite"`
	Viscosity float64 `yaml:"viscosity"`

	SeparationBufferContacts float64 `yaml:"separation_buffer_contacts"`
	SeparationBufferLinkages float64 `yaml:"separation_buffer_linkages"`
	LinkKappa                float64 `yaml:"link_kappa"`

	WallLowZ  bool    `yaml:"wall_low_z"`
	WallHighZ bool    `yaml:"wall_high_z"`
	ZLow      float64 `yaml:"z_low"`
	ZHigh     float64 `yaml:"z_high"`

	Scenario string `yaml:"scenario"`
}

// DefaultConfig returns the knob values the six end-to-end fixtures of
// spec.md §8 are defined against (res=1e-6, maxIte=500, Δt=0.01).
func DefaultConfig() *Config {
	return &Config{
		Dt:                       DefaultDt,
		Res:                      DefaultRes,
		MaxIte:                  DefaultMaxIte,
		Viscosity:                DefaultViscosity,
		SeparationBufferContacts: DefaultSeparationBufferContacts,
		SeparationBufferLinkages: DefaultSeparationBufferLinkages,
		LinkKappa:                DefaultLinkKappa,
		Scenario:                 "two_rods_no_contact",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
