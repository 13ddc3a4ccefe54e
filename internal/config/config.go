// Package config loads the recipe configuration from YAML, JSON or HCL files.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/rsflow/pkg/adapters/process"
	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/aretw0/rsflow/pkg/rsf"
	"github.com/aretw0/rsflow/pkg/seismic"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Store backends accepted in Run.Store.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the full recipe configuration.
type Config struct {
	Model         Model                 `yaml:"model" json:"model" mapstructure:"model"`
	Interpolation seismic.Interpolation `yaml:"interpolation" json:"interpolation" mapstructure:"interpolation"`
	Run           Run                   `yaml:"run" json:"run" mapstructure:"run"`
	// Flows are extra artifacts declared after the recipe, in file order.
	Flows []Flow `yaml:"flows" json:"flows" mapstructure:"flows" validate:"dive"`
}

// Model configures the Kirchhoff modeling stage.
type Model struct {
	// Output names the modeled data cube.
	Output  string `yaml:"output" json:"output" mapstructure:"output"`
	Enabled bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
}

// Run configures the executor.
type Run struct {
	WorkDir       string         `yaml:"workdir" json:"workdir" mapstructure:"workdir" validate:"required"`
	Jobs          int            `yaml:"jobs" json:"jobs" mapstructure:"jobs" validate:"gte=1"`
	ProgramPrefix string         `yaml:"program_prefix" json:"program_prefix" mapstructure:"program_prefix"`
	BinDir        string         `yaml:"bin_dir" json:"bin_dir" mapstructure:"bin_dir"`
	Suffix        string         `yaml:"suffix" json:"suffix" mapstructure:"suffix"`
	Store         string         `yaml:"store" json:"store" mapstructure:"store" validate:"oneof=memory file redis"`
	StorePath     string         `yaml:"store_path" json:"store_path" mapstructure:"store_path" validate:"required_if=Store file"`
	RedisAddr     string         `yaml:"redis_addr" json:"redis_addr" mapstructure:"redis_addr" validate:"required_if=Store redis"`
	RedisPassword string         `yaml:"redis_password" json:"redis_password" mapstructure:"redis_password"`
	RedisDB       int            `yaml:"redis_db" json:"redis_db" mapstructure:"redis_db" validate:"gte=0"`
	LockTTL       time.Duration  `yaml:"lock_ttl" json:"lock_ttl" mapstructure:"lock_ttl" validate:"gte=0"`
	Process       process.Config `yaml:"process" json:"process" mapstructure:"process"`
}

// Flow is a custom artifact declared in the configuration.
type Flow struct {
	Name        string   `yaml:"name" json:"name" mapstructure:"name" validate:"required"`
	Sources     []string `yaml:"sources" json:"sources" mapstructure:"sources"`
	Command     string   `yaml:"command" json:"command" mapstructure:"command" validate:"required"`
	Description string   `yaml:"description" json:"description" mapstructure:"description"`
}

// Operation parses the flow command.
func (f Flow) Operation() (domain.Operation, error) {
	o, err := rsf.Parse(f.Command)
	if err != nil {
		return domain.Operation{}, fmt.Errorf("flow %q: %w", f.Name, err)
	}
	return o, nil
}

// Default returns the configuration of the reference experiment.
func Default() Config {
	return Config{
		Model: Model{
			Output:  seismic.DefaultDataCube,
			Enabled: true,
		},
		Interpolation: seismic.Interpolation{
			DataCube:     seismic.DefaultDataCube,
			Interpolated: "interpolatedDataCube",
			NM:           401,
			DM:           0.025,
			NT:           1001,
			DT:           0.004,
			NHI:          1,
		},
		Run: Run{
			WorkDir:       ".",
			Jobs:          4,
			ProgramPrefix: "sf",
			Suffix:        ".rsf",
			Store:         StoreFile,
			StorePath:     ".rsflow/signatures",
			RedisAddr:     "localhost:6379",
			LockTTL:       10 * time.Minute,
		},
	}
}

// ShellOptions derives the rendering options for the executor.
func (c Config) ShellOptions() rsf.ShellOptions {
	return rsf.ShellOptions{
		Prefix: c.Run.ProgramPrefix,
		BinDir: c.Run.BinDir,
		Suffix: c.Run.Suffix,
	}
}
