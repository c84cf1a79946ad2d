package auth

import (
	"reflect"
	"testing"
	"time"

	"github.com/Mendozape/crud-sub000/app/config"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals the plaintext password")
	}

	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Error("wrong password accepted")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "admin@example.com", "Ana", "Lopez", []string{"admin"})
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "admin@example.com" {
		t.Errorf("claims = %+v, want user-1 / admin@example.com", claims)
	}
	if !reflect.DeepEqual(claims.Roles, []string{"admin"}) {
		t.Errorf("roles = %v, want [admin]", claims.Roles)
	}
}

// The session cookie and the token inside it must expire together, both
// driven by jwt.expire_hours.
func TestTokenTTLFollowsConfig(t *testing.T) {
	prev := config.AppConfig
	defer func() { config.AppConfig = prev }()

	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.ExpireHours = 6

	if got := tokenTTL(); got != 6*time.Hour {
		t.Fatalf("tokenTTL() = %v, want 6h", got)
	}

	token, err := GenerateJWT("user-1", "admin@example.com", "Ana", "Lopez", nil)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > 6*time.Hour || ttl < 5*time.Hour+59*time.Minute {
		t.Errorf("token ttl = %v, want about 6h", ttl)
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}

	token, err := GenerateJWT("user-1", "admin@example.com", "Ana", "Lopez", nil)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(token + "tampered"); err == nil {
		t.Error("tampered token accepted")
	}
}
