package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSpawnerConfigIsValid(t *testing.T) {
	cfg := DefaultSpawnerConfig()
	if err := validateSpawnerConfig(cfg); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	if cfg.ShockwaveSpeedMult != 0.3 {
		t.Errorf("expected shockwave speed mult 0.3, got %g", cfg.ShockwaveSpeedMult)
	}
	if cfg.DragSpawnRate != 4 {
		t.Errorf("expected drag spawn rate 4, got %d", cfg.DragSpawnRate)
	}
	if cfg.KeyHoldInitialDelay != 15 {
		t.Errorf("expected key hold delay 15, got %d", cfg.KeyHoldInitialDelay)
	}
	if cfg.JitterRange != 1.0/9.0 {
		t.Errorf("expected jitter range 1/9, got %g", cfg.JitterRange)
	}
}

func TestLoadSpawnerConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *SpawnerConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
moveAngleDeg: 30
dragSpawnRate: 6
spawnLineStart:
  x: 0.1
  y: 0.3
`,
			validate: func(t *testing.T, cfg *SpawnerConfig) {
				if cfg.MoveAngleDeg != 30 {
					t.Errorf("expected moveAngleDeg = 30, got %g", cfg.MoveAngleDeg)
				}
				if cfg.DragSpawnRate != 6 {
					t.Errorf("expected dragSpawnRate = 6, got %d", cfg.DragSpawnRate)
				}
				if cfg.SpawnLineStart.X != 0.1 || cfg.SpawnLineStart.Y != 0.3 {
					t.Errorf("unexpected spawnLineStart %+v", cfg.SpawnLineStart)
				}
				// 未设置的字段保持默认
				if cfg.MaxScale != 2.0 {
					t.Errorf("expected default maxScale = 2, got %g", cfg.MaxScale)
				}
				if cfg.SpawnLineEnd.X != 0.7 {
					t.Errorf("expected default spawnLineEnd.x = 0.7, got %g", cfg.SpawnLineEnd.X)
				}
			},
		},
		{
			name:        "jitter disabled",
			yamlContent: "spawnRandomness: 0\n",
			validate: func(t *testing.T, cfg *SpawnerConfig) {
				if cfg.SpawnRandomness != 0 {
					t.Errorf("expected spawnRandomness = 0, got %g", cfg.SpawnRandomness)
				}
			},
		},
		{
			name:        "max scale below min scale",
			yamlContent: "minScale: 1.5\nmaxScale: 1.0\n",
			wantErr:     true,
			errContains: "maxScale",
		},
		{
			name:        "speed factor below one",
			yamlContent: "maxSpeedFactor: 0.5\n",
			wantErr:     true,
			errContains: "maxSpeedFactor",
		},
		{
			name:        "zero drag rate",
			yamlContent: "dragSpawnRate: 0\n",
			wantErr:     true,
			errContains: "dragSpawnRate",
		},
		{
			name:        "negative cull margin",
			yamlContent: "cullMargin: -1\n",
			wantErr:     true,
			errContains: "cullMargin",
		},
		{
			name:        "malformed yaml",
			yamlContent: "moveAngleDeg: [1, 2\n",
			wantErr:     true,
			errContains: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "spawner.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}

			cfg, err := LoadSpawnerConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %v", tt.errContains, err)
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

// TestParseSpawnerConfigRejectsNonFinite NaN 和无穷大会绕过范围检查，必须单独拒绝
func TestParseSpawnerConfigRejectsNonFinite(t *testing.T) {
	fields := []string{
		"baseSpeed", "maxSpeedFactor", "spawnRandomness", "jitterRange",
		"shockwaveSpeedMult", "shakeMaxX", "shakeMaxY", "shakeMaxRotDeg",
		"minScale", "maxScale", "tickDistance", "cullMargin",
		"moveAngleDeg", "spreadStrength",
	}

	for _, field := range fields {
		for _, value := range []string{".nan", ".inf", "-.inf"} {
			_, err := ParseSpawnerConfig([]byte(field + ": " + value + "\n"))
			if err == nil {
				t.Errorf("%s: %s should be rejected", field, value)
				continue
			}
			if !strings.Contains(err.Error(), field) {
				t.Errorf("%s: %s: error should name the field, got %v", field, value, err)
			}
		}
	}

	if _, err := ParseSpawnerConfig([]byte("spawnLineEnd:\n  x: .nan\n")); err == nil ||
		!strings.Contains(err.Error(), "spawnLineEnd.x") {
		t.Errorf("expected spawnLineEnd.x error, got %v", err)
	}
}

func TestLoadSpawnerConfigMissingFile(t *testing.T) {
	_, err := LoadSpawnerConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestShippedSpawnerConfig 校验仓库自带的配置文件
func TestShippedSpawnerConfig(t *testing.T) {
	cfg, err := LoadSpawnerConfig("../../data/spawner.yaml")
	if err != nil {
		t.Fatalf("shipped config should load: %v", err)
	}
	if *cfg != *DefaultSpawnerConfig() {
		t.Errorf("shipped config should match defaults, got %+v", cfg)
	}
}
