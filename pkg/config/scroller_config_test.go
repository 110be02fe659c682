package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultScrollerConfig(t *testing.T) {
	cfg := DefaultScrollerConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.FrictionMultiplier != 1.0 {
		t.Errorf("expected frictionMultiplier = 1.0, got %f", cfg.FrictionMultiplier)
	}
	if !cfg.Flywheel {
		t.Error("expected flywheel enabled by default")
	}
	if cfg.Snap.RepeatedFlingWindowMs != 1500 {
		t.Errorf("expected repeatedFlingWindowMs = 1500, got %d", cfg.Snap.RepeatedFlingWindowMs)
	}
}

func TestLoadScrollerConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *ScrollerConfig)
	}{
		{
			name: "valid config",
			yamlContent: `
density: 3.0
scrollFriction: 0.02
frictionMultiplier: 1.5
flywheel: false
snap:
  singleVelocity: 100
  doubleVelocity: 500
  tripleVelocity: 900
  maxVelocity: 2000
  maxSteps: 8
  repeatedFlingVelocity: 300
  repeatedFlingWindowMs: 1000
`,
			validate: func(t *testing.T, cfg *ScrollerConfig) {
				if cfg.Density != 3.0 {
					t.Errorf("expected density = 3.0, got %f", cfg.Density)
				}
				if cfg.FrictionMultiplier != 1.5 {
					t.Errorf("expected frictionMultiplier = 1.5, got %f", cfg.FrictionMultiplier)
				}
				if cfg.Flywheel {
					t.Error("expected flywheel disabled")
				}
				if cfg.Snap.MaxSteps != 8 {
					t.Errorf("expected maxSteps = 8, got %d", cfg.Snap.MaxSteps)
				}
				if cfg.Snap.RepeatedFlingWindowMs != 1000 {
					t.Errorf("expected repeatedFlingWindowMs = 1000, got %d", cfg.Snap.RepeatedFlingWindowMs)
				}
			},
		},
		{
			name: "partial config keeps defaults",
			yamlContent: `
density: 1.5
`,
			validate: func(t *testing.T, cfg *ScrollerConfig) {
				if cfg.Density != 1.5 {
					t.Errorf("expected density = 1.5, got %f", cfg.Density)
				}
				if cfg.ScrollFriction != 0.015 {
					t.Errorf("expected default scrollFriction = 0.015, got %f", cfg.ScrollFriction)
				}
				if !cfg.Flywheel {
					t.Error("expected default flywheel = true")
				}
				if cfg.Snap.MaxSteps != DefaultScrollerConfig().Snap.MaxSteps {
					t.Errorf("expected default maxSteps, got %d", cfg.Snap.MaxSteps)
				}
			},
		},
		{
			name:        "invalid density",
			yamlContent: "density: 0\n",
			wantErr:     true,
			errContains: "density must be > 0",
		},
		{
			name:        "invalid friction multiplier",
			yamlContent: "frictionMultiplier: -1\n",
			wantErr:     true,
			errContains: "frictionMultiplier must be > 0",
		},
		{
			name: "snap breakpoints not increasing",
			yamlContent: `
snap:
  doubleVelocity: 3000
`,
			wantErr:     true,
			errContains: "tripleVelocity(2000.0) must be > doubleVelocity(3000.0)",
		},
		{
			name: "too few max steps",
			yamlContent: `
snap:
  maxSteps: 2
`,
			wantErr:     true,
			errContains: "maxSteps must be >= 3",
		},
		{
			name: "non-positive window",
			yamlContent: `
snap:
  repeatedFlingWindowMs: 0
`,
			wantErr:     true,
			errContains: "repeatedFlingWindowMs must be > 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 创建临时 YAML 文件
			tmpDir := t.TempDir()
			tmpFile := filepath.Join(tmpDir, "scroller.yaml")
			if err := os.WriteFile(tmpFile, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to create temp file: %v", err)
			}

			cfg, err := LoadScrollerConfig(tmpFile)

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errContains)
				} else if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadScrollerConfig_FileNotFound(t *testing.T) {
	_, err := LoadScrollerConfig("/nonexistent/scroller.yaml")
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
	if !strings.Contains(err.Error(), "failed to read scroller config") {
		t.Errorf("expected error about reading file, got: %v", err)
	}
}

func TestParseScrollerConfig_InvalidYAML(t *testing.T) {
	_, err := ParseScrollerConfig([]byte("invalid: yaml: content:"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse scroller config") {
		t.Errorf("expected YAML parse error, got: %v", err)
	}
}

// TestLoadScrollerConfig_ShippedFile 验证仓库自带的默认配置文件
func TestLoadScrollerConfig_ShippedFile(t *testing.T) {
	cfg, err := LoadScrollerConfig(filepath.Join("..", "..", ScrollerConfigPath))
	if err != nil {
		t.Fatalf("failed to load shipped config: %v", err)
	}

	want := DefaultScrollerConfig()
	if *cfg != *want {
		t.Errorf("shipped config differs from defaults:\n got  %+v\n want %+v", *cfg, *want)
	}
}
