package config

import (
	"fmt"
	"strings"
)

// Config is finecron's on-disk configuration: runtime settings plus the
// named schedule definitions the watch daemon keeps validated.
type Config struct {
	Logging   Logging    `json:"logging" yaml:"logging"`
	Store     Store      `json:"store" yaml:"store"`
	Schedules []Schedule `json:"schedules" yaml:"schedules"`
}

type Logging struct {
	Level string `json:"level" yaml:"level"`
}

type Store struct {
	// Path of the sqlite database file. Empty disables persistence.
	Path string `json:"path" yaml:"path"`
}

// Schedule is one named schedule definition. Expr is compiled by the
// registry; validation here is purely structural.
type Schedule struct {
	Name     string `json:"name" yaml:"name"`
	Expr     string `json:"expr" yaml:"expr"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Validate checks structural invariants: every definition is named, names
// are unique, and no expression is empty.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Schedules))
	for i, s := range c.Schedules {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("schedules[%d]: name is required", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("schedules[%d]: duplicate name %q", i, name)
		}
		seen[name] = struct{}{}
		if strings.TrimSpace(s.Expr) == "" {
			return fmt.Errorf("schedule %q: expr is required", name)
		}
	}
	return nil
}
