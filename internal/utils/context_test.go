// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-identity/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestClaimsCtxKey(t *testing.T) {
	if ClaimsCtxKey.String() != "claims" {
		t.Errorf("expected 'claims', got '%s'", ClaimsCtxKey.String())
	}
}

func TestGetClaimsFromContext_Success(t *testing.T) {
	claims := models.Claims{Nick: "ann", Role: models.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Subject: "42"}}
	ctx := WithClaims(context.Background(), claims)

	got, ok := GetClaimsFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got.Nick != "ann" || !got.IsAdmin() {
		t.Errorf("unexpected claims %+v", got)
	}

	userID, ok := GetUserIDFromContext(ctx)
	if !ok || userID != "42" {
		t.Errorf("expected userID=42, got %q (ok=%v)", userID, ok)
	}
}

func TestGetClaimsFromContext_Missing(t *testing.T) {
	if _, ok := GetClaimsFromContext(context.Background()); ok {
		t.Fatal("expected ok=false, got true")
	}

	userID, ok := GetUserIDFromContext(context.Background())
	if ok || userID != "" {
		t.Errorf("expected empty userID, got %q", userID)
	}
}

func TestGetClaimsFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClaimsCtxKey, "not-claims")

	if _, ok := GetClaimsFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetUserIDFromContext_EmptySubject(t *testing.T) {
	ctx := WithClaims(context.Background(), models.Claims{Nick: "ann"})

	if _, ok := GetUserIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty subject")
	}
}
