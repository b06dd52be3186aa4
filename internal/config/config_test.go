package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_LockoutDefaults(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Lockout.MaxAttempts != 3 {
		t.Errorf("MaxAttempts: got %d, want 3", cfg.Lockout.MaxAttempts)
	}
	if cfg.Lockout.LockDuration != 5*time.Minute {
		t.Errorf("LockDuration: got %v, want 5m", cfg.Lockout.LockDuration)
	}
	if cfg.Lockout.Retention != time.Hour {
		t.Errorf("Retention: got %v, want 1h", cfg.Lockout.Retention)
	}
}

func TestLoad_LockoutCustomValues(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("LOCKOUT_MAX_ATTEMPTS", "5")
	os.Setenv("LOCKOUT_DURATION", "10m")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Lockout.MaxAttempts != 5 {
		t.Errorf("MaxAttempts: got %d, want 5", cfg.Lockout.MaxAttempts)
	}
	if cfg.Lockout.LockDuration != 10*time.Minute {
		t.Errorf("LockDuration: got %v, want 10m", cfg.Lockout.LockDuration)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() without JWT_SECRET should fail")
	}
}

func TestLoad_RejectsWeakJWTSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "short")
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() with short JWT_SECRET should fail")
	}
}

func TestLoad_EmailEnabledRequiresFromAddress(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("EMAIL_ENABLED", "true")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() with EMAIL_ENABLED and no from address should fail")
	}
}
