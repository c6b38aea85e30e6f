package main

import (
	"testing"
)

// assertError is a test helper that checks if an error occurred and fails the test if not
func assertError(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Errorf("Expected error: %s, got nil", msg)
	}
}

// assertNoError is a test helper that fails the test if an error occurred
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// assertEqual is a generic test helper for comparing values
func assertEqual(t *testing.T, got, want interface{}, msg string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %v, want %v", msg, got, want)
	}
}

// validConfig returns a config with every field at its default
func validConfig() Config {
	cfg := Config{}
	cfg.UI.Color = "2"
	cfg.Picker.VisibleRows = 7
	cfg.Picker.ScrollStep = 25
	cfg.Timing.SettleMs = 100
	cfg.Timing.FrameMs = 16
	cfg.Animation.Frequency = 6.0
	cfg.Animation.Damping = 1.0
	return cfg
}
