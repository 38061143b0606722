package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ray-remotestate/tableside/database/dbhelper"
	"github.com/ray-remotestate/tableside/middlewares"
	"github.com/ray-remotestate/tableside/models"
	"github.com/ray-remotestate/tableside/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := utils.ParseBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "all fields are required")
		return
	}
	if len(req.Password) < 6 {
		utils.RespondError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	exists, err := h.users.Exists(req.Email)
	if err != nil {
		h.serverError(w, "failed to check user existence", err)
		return
	}
	if exists {
		utils.RespondError(w, http.StatusBadRequest, "user already exists")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		h.serverError(w, "failed to hash password", err)
		return
	}

	userID, err := h.users.Create(req.Name, req.Email, hashedPassword, models.RoleUser)
	if err != nil {
		h.serverError(w, "failed to register user", err)
		return
	}

	accToken, refToken, err := utils.GenerateTokens(h.cfg.SecretKey, userID, models.RoleUser)
	if err != nil {
		h.serverError(w, "failed to generate tokens", err)
		return
	}

	setRefreshCookie(w, refToken)
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"user_id":      userID,
		"email":        req.Email,
		"name":         req.Name,
		"access_token": accToken,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := utils.ParseBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := h.users.GetByPassword(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, dbhelper.ErrNotFound) {
			utils.RespondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		utils.RespondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(h.cfg.SecretKey, user.ID, user.Role)
	if err != nil {
		h.serverError(w, "failed to generate tokens", err)
		return
	}

	setRefreshCookie(w, refreshToken)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":      user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"role":         user.Role,
		"access_token": accessToken,
		"message":      "Successfully logged in",
	})
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Refresh token missing")
		return
	}

	claims := &middlewares.Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return h.cfg.SecretKey, nil
	})
	if err != nil || !token.Valid {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	newAccessToken, newRefreshToken, err := utils.GenerateTokens(h.cfg.SecretKey, claims.UserID, claims.Role)
	if err != nil {
		h.serverError(w, "failed to generate tokens", err)
		return
	}

	setRefreshCookie(w, newRefreshToken)
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"access_token": newAccessToken,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}

func setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
	})
}
