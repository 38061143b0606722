package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/tableside/config"
	"github.com/ray-remotestate/tableside/middlewares"
	"github.com/ray-remotestate/tableside/models"
	"github.com/ray-remotestate/tableside/notify"
	"github.com/ray-remotestate/tableside/utils"
)

func parseClaims(t *testing.T, secret []byte, token string) *middlewares.Claims {
	t.Helper()
	claims := &middlewares.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	return claims
}

func TestRefreshTokenKeepsIdentityAndRole(t *testing.T) {
	cfg := &config.Config{Environment: "development", SecretKey: []byte("test-secret")}
	h := New(cfg, nil, notify.NewHub(nil))

	userID := uuid.New()
	_, refreshToken, err := utils.GenerateTokens(cfg.SecretKey, userID, models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refreshToken})
	rec := httptest.NewRecorder()
	h.RefreshToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	access := parseClaims(t, cfg.SecretKey, body["access_token"])
	assert.Equal(t, userID, access.UserID)
	assert.Equal(t, models.RoleAdmin, access.Role)

	// the re-issued refresh token must survive another round trip too
	var newRefresh string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "refresh_token" {
			newRefresh = c.Value
		}
	}
	require.NotEmpty(t, newRefresh)
	rotated := parseClaims(t, cfg.SecretKey, newRefresh)
	assert.Equal(t, userID, rotated.UserID)
	assert.Equal(t, models.RoleAdmin, rotated.Role)
}

func TestRefreshTokenRejectsMissingCookie(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	rec := httptest.NewRecorder()
	h.RefreshToken(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshTokenRejectsGarbageToken(t *testing.T) {
	cfg := &config.Config{Environment: "development", SecretKey: []byte("test-secret")}
	h := New(cfg, nil, notify.NewHub(nil))

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	h.RefreshToken(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
