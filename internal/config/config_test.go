package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testSchema = `
task?:    "heading-hold" | "turn-heading"
shaping?: "standard" | "extra" | "extra-sequential"
aircraft?: string
max_steps?: int & >0
`

func writeFiles(t *testing.T, yamlBody string) (cfgPath, schemaPath string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath = filepath.Join(dir, "environment.yaml")
	schemaPath = filepath.Join(dir, "environment.cue")
	if err := os.WriteFile(cfgPath, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(schemaPath, []byte(testSchema), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return cfgPath, schemaPath
}

func TestLoadValid(t *testing.T) {
	cfgPath, schemaPath := writeFiles(t, `
task: turn-heading
shaping: extra
aircraft: f16
max_steps: 150
`)
	cfg, err := Load(cfgPath, schemaPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Task != TaskTurnHeading || cfg.Shaping != ShapingExtra {
		t.Errorf("unexpected task/shaping: %+v", cfg)
	}
	if cfg.MaxSteps != 150 {
		t.Errorf("max_steps = %d, want 150", cfg.MaxSteps)
	}
	// Unspecified fields keep defaults.
	if cfg.Reward.AltitudeErrorScaleFt != 100 {
		t.Errorf("altitude scale = %g, want default 100", cfg.Reward.AltitudeErrorScaleFt)
	}
}

func TestLoadRejectsBadShaping(t *testing.T) {
	cfgPath, schemaPath := writeFiles(t, `
shaping: turbo
`)
	if _, err := Load(cfgPath, schemaPath); err == nil {
		t.Fatal("expected schema violation for unknown shaping mode")
	}
}

func TestDefaultsValid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Errorf("Defaults().Validate(): %v", err)
	}
}

func TestValidateZeroScale(t *testing.T) {
	cfg := Defaults()
	cfg.Reward.AltitudeErrorScaleFt = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero altitude error scale")
	}
}

func TestValidateEmptyAltitudeBand(t *testing.T) {
	cfg := Defaults()
	cfg.Termination.MinAltitudeFt = 90000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty termination altitude band")
	}
}

func TestValidateAgentHzAboveSimHz(t *testing.T) {
	cfg := Defaults()
	cfg.AgentHz = 120
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when agent_hz exceeds sim_hz")
	}
}
