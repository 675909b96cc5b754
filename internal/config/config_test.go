package config

import (
	"strings"
	"testing"
)

func TestDecodeYAML(t *testing.T) {
	t.Parallel()
	raw := `
logging:
  level: debug
store:
  path: /var/lib/finecron/finecron.db
schedules:
  - name: nightly-report
    expr: "2:30:00"
  - name: disabled-one
    expr: "*.*.12 10:00:00"
    disabled: true
`
	cfg, err := Decode("finecron.yaml", []byte(raw))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q, want debug", cfg.Logging.Level)
	}
	if len(cfg.Schedules) != 2 {
		t.Fatalf("schedules = %d, want 2", len(cfg.Schedules))
	}
	if !cfg.Schedules[1].Disabled {
		t.Fatal("second schedule should be disabled")
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()
	raw := `{"logging":{"level":"info"},"store":{"path":"x.db"},"schedules":[{"name":"a","expr":"10:00:00"}]}`
	cfg, err := Decode("finecron.json", []byte(raw))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if cfg.Schedules[0].Name != "a" {
		t.Fatalf("name = %q, want a", cfg.Schedules[0].Name)
	}
}

func TestDecodeRejections(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		path string
		raw  string
		want string
	}{
		{
			name: "unknown yaml key",
			path: "c.yaml",
			raw:  "loging:\n  level: info\n",
			want: "yaml decode",
		},
		{
			name: "unknown json key",
			path: "c.json",
			raw:  `{"loging":{}}`,
			want: "json decode",
		},
		{
			name: "trailing json",
			path: "c.json",
			raw:  `{"logging":{}}{"logging":{}}`,
			want: "trailing data",
		},
		{
			name: "missing name",
			path: "c.yaml",
			raw:  "schedules:\n  - expr: \"10:00:00\"\n",
			want: "name is required",
		},
		{
			name: "duplicate name",
			path: "c.yaml",
			raw:  "schedules:\n  - name: a\n    expr: \"10:00:00\"\n  - name: a\n    expr: \"11:00:00\"\n",
			want: "duplicate name",
		},
		{
			name: "missing expr",
			path: "c.yaml",
			raw:  "schedules:\n  - name: a\n",
			want: "expr is required",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(tt.path, []byte(tt.raw))
			if err == nil {
				t.Fatalf("Decode(%q) succeeded, want error", tt.raw)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	t.Parallel()
	cfg, err := Decode("c.yaml", nil)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(cfg.Schedules) != 0 {
		t.Fatalf("schedules = %d, want 0", len(cfg.Schedules))
	}
}
