package config

import (
	"testing"
	"time"

	"loanintake-backend/internal/core/domain"
	"loanintake-backend/internal/pkg/password"
)

func seedConfig() SuperuserConfig {
	return SuperuserConfig{
		Username: "admin",
		Email:    "admin@example.com",
		Phone:    "9876543210",
		DOB:      "1985-06-20",
		Password: "Sup3r!Secret",
	}
}

func TestBuildSuperuserAlwaysManager(t *testing.T) {
	user, err := buildSuperuser(seedConfig())
	if err != nil {
		t.Fatalf("buildSuperuser failed: %v", err)
	}
	if user.Role != domain.RoleManager {
		t.Fatalf("expected manager role, got %s", user.Role)
	}
	if !user.IsActive || !user.IsStaff {
		t.Fatal("bootstrap account must be active staff")
	}
}

func TestBuildSuperuserHashesPassword(t *testing.T) {
	seed := seedConfig()
	user, err := buildSuperuser(seed)
	if err != nil {
		t.Fatalf("buildSuperuser failed: %v", err)
	}
	if user.Password == seed.Password {
		t.Fatal("password stored in plaintext")
	}
	if !password.Verify(seed.Password, user.Password) {
		t.Fatal("stored hash does not verify against the seed password")
	}
}

func TestBuildSuperuserParsesDOB(t *testing.T) {
	user, err := buildSuperuser(seedConfig())
	if err != nil {
		t.Fatalf("buildSuperuser failed: %v", err)
	}
	want := time.Date(1985, time.June, 20, 0, 0, 0, 0, time.UTC)
	if !user.DOB.Equal(want) {
		t.Fatalf("expected DOB %v, got %v", want, user.DOB)
	}
}

func TestBuildSuperuserRejectsBadDOB(t *testing.T) {
	seed := seedConfig()
	seed.DOB = "20-06-1985"

	if _, err := buildSuperuser(seed); err == nil {
		t.Fatal("expected an error for a malformed DOB")
	}
}
