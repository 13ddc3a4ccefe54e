package process

import "time"

// Config is the declarative form of the runner options.
type Config struct {
	Shell   string            `yaml:"shell" json:"shell" mapstructure:"shell"`
	BaseDir string            `yaml:"base_dir" json:"base_dir" mapstructure:"base_dir"`
	Env     map[string]string `yaml:"env" json:"env" mapstructure:"env"`
	Timeout time.Duration     `yaml:"timeout" json:"timeout" mapstructure:"timeout"`
}

// Options converts the config into runner options. Empty fields keep the defaults.
func (c Config) Options() []RunnerOption {
	var opts []RunnerOption
	if c.Shell != "" {
		opts = append(opts, WithShell(c.Shell))
	}
	if c.BaseDir != "" {
		opts = append(opts, WithBaseDir(c.BaseDir))
	}
	if len(c.Env) > 0 {
		opts = append(opts, WithEnv(c.Env))
	}
	if c.Timeout > 0 {
		opts = append(opts, WithTimeout(c.Timeout))
	}
	return opts
}
