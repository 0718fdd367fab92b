package model

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestConfigValidateRejectsNonPositiveCounts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Runs = 0
	cfg.Evaluations = -5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for non-positive runs and evaluations")
	}
	msg := err.Error()
	if !strings.Contains(msg, "runs") || !strings.Contains(msg, "evaluations") {
		t.Errorf("expected both problems reported, got %q", msg)
	}
}

func TestConfigValidateRejectsUnknownModes(t *testing.T) {
	cases := []func(c *Config){
		func(c *Config) { c.Algorithm = "annealing" },
		func(c *Config) { c.RNG.Mode = "dice" },
		func(c *Config) { c.ParentSelection = "best" },
		func(c *Config) { c.Survival.Strategy = "semicolon" },
		func(c *Config) { c.Survival.Selection = "elitist" },
		func(c *Config) { c.Termination.Mode = "never" },
	}
	for i, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestConfigValidateStagnationWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Termination = TerminationConfig{Mode: TerminateStagnation, StagnationGenerations: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero stagnation window")
	}
}

func TestConfigValidateMutationRateBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MutationRate = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for mutation rate above 1")
	}
	cfg.MutationRate = 1
	if err := cfg.Validate(); err != nil {
		t.Errorf("mutation rate 1 should be valid: %v", err)
	}
}

func TestConfigValidateCommaNeedsTwoOffspring(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Survival.Strategy = SurvivalComma
	cfg.Lambda = 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for comma strategy with a single offspring")
	}
}

func TestConfigValidateRandomIgnoresEAFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Algorithm = AlgorithmRandom
	cfg.Mu = 0
	cfg.ParentSelection = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("random search should not validate EA fields: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	for _, name := range GetPresetNames() {
		cfg, ok := GetPreset(name)
		if !ok {
			t.Errorf("preset %q not found", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q is invalid: %v", name, err)
		}
	}

	cfg, ok := GetPreset("random-search")
	if !ok || cfg.Algorithm != AlgorithmRandom {
		t.Errorf("expected random-search preset to select random algorithm, got %s", cfg.Algorithm)
	}

	if _, ok := GetPreset("does-not-exist"); ok {
		t.Error("expected unknown preset to report not found")
	}
}
