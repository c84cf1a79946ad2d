package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Address != ":3000" {
		t.Errorf("Server.Address = %q, want :3000", cfg.Server.Address)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Security.BcryptCost != 12 {
		t.Errorf("Security.BcryptCost = %d, want 12", cfg.Security.BcryptCost)
	}
}

func TestLoadEnvOverridesNestedKeys(t *testing.T) {
	t.Setenv("HOA_DATABASE_PORT", "6543")
	t.Setenv("HOA_DATABASE_PASSWORD", "fromenv")
	t.Setenv("HOA_JWT_EXPIRE_HOURS", "6")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.Port != 6543 {
		t.Errorf("HOA_DATABASE_PORT not applied: Database.Port = %d, want 6543", cfg.Database.Port)
	}
	if cfg.Database.Password != "fromenv" {
		t.Errorf("HOA_DATABASE_PASSWORD not applied: got %q", cfg.Database.Password)
	}
	if cfg.JWT.ExpireHours != 6 {
		t.Errorf("HOA_JWT_EXPIRE_HOURS not applied: got %d", cfg.JWT.ExpireHours)
	}
}
