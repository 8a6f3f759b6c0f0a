package logger

import "testing"

func TestSetLevelValid(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error", "fatal", "INFO"} {
		if err := SetLevel(level); err != nil {
			t.Fatalf("expected %q to be accepted, got %v", level, err)
		}
	}
}

func TestSetLevelInvalid(t *testing.T) {
	if err := SetLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestSetLevelAdjustsThreshold(t *testing.T) {
	if err := SetLevel("error"); err != nil {
		t.Fatal(err)
	}
	if Log.level != LevelError {
		t.Fatalf("expected LevelError, got %v", Log.level)
	}

	// Restore the default for other tests.
	if err := SetLevel("info"); err != nil {
		t.Fatal(err)
	}
}
