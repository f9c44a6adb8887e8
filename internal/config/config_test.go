package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.JWTIssuer != "aims-auth" {
		t.Errorf("JWTIssuer = %q, want aims-auth", cfg.JWTIssuer)
	}
	if cfg.JWTAudience != "aims-api" {
		t.Errorf("JWTAudience = %q, want aims-api", cfg.JWTAudience)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.OTPMaxAttempts != 5 {
		t.Errorf("OTPMaxAttempts = %d, want 5", cfg.OTPMaxAttempts)
	}
	if cfg.VerificationStore != "postgres" {
		t.Errorf("VerificationStore = %q, want postgres", cfg.VerificationStore)
	}
	if cfg.OTPReturnToClient {
		t.Error("OTPReturnToClient should default to false")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("JWT_ISSUER", "custom-issuer")
	os.Setenv("BCRYPT_COST", "14")
	os.Setenv("VERIFICATION_STORE", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want custom-issuer", cfg.JWTIssuer)
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
	if cfg.VerificationStore != "memory" {
		t.Errorf("VerificationStore = %q, want memory", cfg.VerificationStore)
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	os.Clearenv()
	os.Setenv("BCRYPT_COST", "99")
	if _, err := Load(); err == nil {
		t.Fatal("Load should reject BCRYPT_COST=99")
	}
}

func TestLoad_DevOTPInProduction(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "production")
	os.Setenv("OTP_RETURN_TO_CLIENT", "true")
	if _, err := Load(); err == nil {
		t.Fatal("Load should reject dev OTP mode in production")
	}
}

func TestLoad_RedisStoreRequiresAddr(t *testing.T) {
	os.Clearenv()
	os.Setenv("VERIFICATION_STORE", "redis")
	if _, err := Load(); err == nil {
		t.Fatal("Load should require REDIS_ADDR for the redis store")
	}

	os.Setenv("REDIS_ADDR", "localhost:6379")
	if _, err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoad_UnknownStore(t *testing.T) {
	os.Clearenv()
	os.Setenv("VERIFICATION_STORE", "etcd")
	if _, err := Load(); err == nil {
		t.Fatal("Load should reject an unknown verification store")
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := &Config{JWTAccessTTL: "30m", OTPTTL: "5m"}
	if cfg.AccessTTL() != 30*time.Minute {
		t.Errorf("AccessTTL = %v, want 30m", cfg.AccessTTL())
	}
	if cfg.ChallengeTTL() != 5*time.Minute {
		t.Errorf("ChallengeTTL = %v, want 5m", cfg.ChallengeTTL())
	}

	bad := &Config{JWTAccessTTL: "soon", OTPTTL: ""}
	if bad.AccessTTL() != 15*time.Minute {
		t.Errorf("AccessTTL fallback = %v, want 15m", bad.AccessTTL())
	}
	if bad.ChallengeTTL() != 10*time.Minute {
		t.Errorf("ChallengeTTL fallback = %v, want 10m", bad.ChallengeTTL())
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: "http://localhost:3000, https://aims.example.edu"}
	got := cfg.AllowedOrigins()
	if len(got) != 2 || got[0] != "http://localhost:3000" || got[1] != "https://aims.example.edu" {
		t.Errorf("AllowedOrigins = %v", got)
	}
	if (&Config{}).AllowedOrigins() != nil {
		t.Error("empty config should return nil origins")
	}
}
