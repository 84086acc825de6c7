package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-identity/models"
	"github.com/golang-jwt/jwt/v5"
)

var testUser = models.User{ID: "0190a5f4-1111-7000-8000-000000000001", Name: "Ann", Nick: "ann", Role: models.RoleUser}

func TestGenerateJWTToken_Success(t *testing.T) {
	now := time.Now()
	claims := NewClaims(testUser, "test-issuer", now, time.Hour)

	token, err := GenerateJWTToken(claims, "secret-key")

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if strings.Count(token.SignedString, ".") != 2 {
		t.Errorf("expected compact JWS with 3 segments, got %q", token.SignedString)
	}
	if token.Claims.Subject != testUser.ID {
		t.Errorf("expected subject %s, got %s", testUser.ID, token.Claims.Subject)
	}
	if token.Claims.Nick != "ann" || token.Claims.Role != models.RoleUser {
		t.Errorf("unexpected claims: %+v", token.Claims)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	now := time.Now()
	valid := NewClaims(testUser, "iss", now, time.Hour)

	noIssuer := valid
	noIssuer.Issuer = ""
	noSubject := valid
	noSubject.Subject = ""
	noExpiry := valid
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name   string
		claims models.Claims
		key    string
	}{
		{"empty issuer", noIssuer, "key"},
		{"empty subject", noSubject, "key"},
		{"no expiry", noExpiry, "key"},
		{"empty key", valid, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GenerateJWTToken(tt.claims, tt.key); err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	genToken, _ := GenerateJWTToken(NewClaims(testUser, "test-issuer", time.Now(), 5*time.Minute), "secret-key")

	claims, err := ValidateAndParseJWTToken(genToken.SignedString, "secret-key", "test-issuer", nil)

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if claims.UserID() != testUser.ID {
		t.Errorf("expected userID %s, got %s", testUser.ID, claims.UserID())
	}
	if claims.Name != "Ann" {
		t.Errorf("expected name Ann, got %s", claims.Name)
	}
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	genToken, _ := GenerateJWTToken(NewClaims(testUser, "test-issuer", time.Now(), time.Hour), "correct-key")

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "wrong-key", "test-issuer", nil)
	if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		t.Errorf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestValidateAndParseJWTToken_TamperedSignature(t *testing.T) {
	genToken, _ := GenerateJWTToken(NewClaims(testUser, "iss", time.Now(), time.Hour), "key")

	// The first signature character always carries significant bits.
	dot := strings.LastIndex(genToken.SignedString, ".")
	b := []byte(genToken.SignedString)
	if b[dot+1] == 'A' {
		b[dot+1] = 'B'
	} else {
		b[dot+1] = 'A'
	}

	_, err := ValidateAndParseJWTToken(string(b), "key", "iss", nil)
	if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		t.Errorf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func TestValidateAndParseJWTToken_AnyAlteredSignatureCharacter(t *testing.T) {
	genToken, err := GenerateJWTToken(NewClaims(testUser, "iss", time.Now(), time.Hour), "key")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	dot := strings.LastIndex(genToken.SignedString, ".")

	for pos := dot + 1; pos < len(genToken.SignedString); pos++ {
		for _, c := range []byte(base64URLAlphabet) {
			b := []byte(genToken.SignedString)
			if b[pos] == c {
				continue
			}
			b[pos] = c

			_, err := ValidateAndParseJWTToken(string(b), "key", "iss", nil)
			if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
				t.Fatalf("signature char %d changed to %q: expected ErrTokenSignatureInvalid, got %v", pos-dot-1, c, err)
			}
		}
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	genToken, _ := GenerateJWTToken(NewClaims(testUser, "iss", issuedAt, time.Hour), "key")

	later := func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "iss", later)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}

	earlier := func() time.Time { return issuedAt.Add(30 * time.Minute) }
	if _, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "iss", earlier); err != nil {
		t.Errorf("expected token valid before expiry, got %v", err)
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	genToken, _ := GenerateJWTToken(NewClaims(testUser, "real-issuer", time.Now(), time.Hour), "key")

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "fake-issuer", nil)
	if !errors.Is(err, jwt.ErrTokenInvalidIssuer) {
		t.Errorf("expected ErrTokenInvalidIssuer, got %v", err)
	}
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(raw, "key", "iss", nil)
			if !errors.Is(err, jwt.ErrTokenMalformed) {
				t.Errorf("expected ErrTokenMalformed for %q, got %v", raw, err)
			}
		})
	}
}

func TestValidateAndParseJWTToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := NewClaims(testUser, "iss", time.Now(), time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte("key"))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	_, err = ValidateAndParseJWTToken(signed, "key", "iss", nil)
	if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		t.Errorf("expected HS512 to be rejected, got %v", err)
	}
}
