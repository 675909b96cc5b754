// Package registry keeps a named set of compiled schedule expressions in
// sync with a config file on disk.
package registry

import (
	"fmt"

	"finecron/internal/config"
	"finecron/schedule"
)

// Schedule is one compiled, named definition.
type Schedule struct {
	Name   string
	Expr   string
	Format schedule.Format
}

// Snapshot is an immutable set of compiled schedules from one config
// read. Definition order is preserved.
type Snapshot struct {
	Schedules []Schedule
	byName    map[string]int
}

// Compile parses every enabled definition. It fails on the first invalid
// expression, naming the definition: a config with a bad schedule is
// rejected wholesale, never partially applied.
func Compile(defs []config.Schedule) (*Snapshot, error) {
	snap := &Snapshot{byName: make(map[string]int, len(defs))}
	for _, d := range defs {
		if d.Disabled {
			continue
		}
		f, err := schedule.Parse(d.Expr)
		if err != nil {
			return nil, fmt.Errorf("schedule %q: %w", d.Name, err)
		}
		snap.byName[d.Name] = len(snap.Schedules)
		snap.Schedules = append(snap.Schedules, Schedule{Name: d.Name, Expr: d.Expr, Format: f})
	}
	return snap, nil
}

// Get returns the compiled schedule with the given name.
func (s *Snapshot) Get(name string) (Schedule, bool) {
	if s == nil {
		return Schedule{}, false
	}
	i, ok := s.byName[name]
	if !ok {
		return Schedule{}, false
	}
	return s.Schedules[i], true
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Schedules)
}
