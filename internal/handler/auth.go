package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/voicetodo/voicetodo/internal/auth"
	"github.com/voicetodo/voicetodo/internal/handler/dto"
	"github.com/voicetodo/voicetodo/internal/middleware"
	"github.com/voicetodo/voicetodo/internal/model"
	"github.com/voicetodo/voicetodo/internal/repository"
)

// OAuthExchanger drives the provider side of the login flow.
type OAuthExchanger interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.Profile, error)
}

// SessionManager stores sessions and pending OAuth states.
type SessionManager interface {
	SetSession(ctx context.Context, tokenHash string, session *model.Session, ttl time.Duration) error
	DeleteSession(ctx context.Context, tokenHash string) error
	SetOAuthState(ctx context.Context, state string) error
	ConsumeOAuthState(ctx context.Context, state string) (bool, error)
}

// UserStore resolves provider profiles to local user records.
type UserStore interface {
	GetOrCreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// AuthHandler handles the login, logout and profile endpoints.
type AuthHandler struct {
	oauth      OAuthExchanger
	sessions   SessionManager
	users      UserStore
	sessionTTL time.Duration
	secure     bool
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. secure controls the Secure
// flag on the session cookie and should be true outside development.
func NewAuthHandler(oauth OAuthExchanger, sessions SessionManager, users UserStore, sessionTTL time.Duration, secure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		oauth:      oauth,
		sessions:   sessions,
		users:      users,
		sessionTTL: sessionTTL,
		secure:     secure,
		logger:     logger,
	}
}

// Login handles GET /auth/login.
// It records a single-use state parameter and redirects to the provider.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	if err := h.sessions.SetOAuthState(r.Context(), state); err != nil {
		h.logger.Error("failed to store oauth state", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not start login")
		return
	}

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusFound)
}

// Callback handles GET /auth/callback.
// It verifies the state, exchanges the code, upserts the user and issues
// a session token. The raw token appears only in this response; the
// server keeps its hash.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	state := query.Get("state")
	code := query.Get("code")
	if state == "" || code == "" {
		writeError(w, http.StatusBadRequest, "INVALID_CALLBACK", "Missing state or code parameter")
		return
	}

	ok, err := h.sessions.ConsumeOAuthState(r.Context(), state)
	if err != nil {
		h.logger.Error("failed to verify oauth state", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not complete login")
		return
	}
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_STATE", "Unknown or expired state parameter")
		return
	}

	profile, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("oauth exchange failed", "error", err)
		writeError(w, http.StatusBadGateway, "OAUTH_EXCHANGE_FAILED", "Identity provider rejected the login")
		return
	}

	user, err := h.users.GetOrCreateUser(r.Context(), &model.User{
		ID:    uuid.NewString(),
		Email: profile.Email,
		Name:  profile.Name,
		Image: profile.Picture,
	})
	if err != nil {
		h.logger.Error("failed to upsert user", "error", err, "email", profile.Email)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not complete login")
		return
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		h.logger.Error("failed to generate session token", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not complete login")
		return
	}

	session := &model.Session{
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.sessions.SetSession(r.Context(), auth.HashToken(token), session, h.sessionTTL); err != nil {
		h.logger.Error("failed to store session", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not complete login")
		return
	}

	h.setSessionCookie(w, token, h.sessionTTL)

	h.logger.Info("user_logged_in", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  *dto.ToUserResponse(user),
	})
}

// Logout handles POST /auth/logout.
// Revocation is immediate: the session record is deleted, so the token
// stops working everywhere, not just in this browser.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		token = cookie.Value
	}
	if token == "" {
		if authHeader := r.Header.Get("Authorization"); len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		}
	}

	if token != "" {
		if err := h.sessions.DeleteSession(r.Context(), auth.HashToken(token)); err != nil {
			h.logger.Error("failed to delete session", "error", err)
		}
	}

	h.setSessionCookie(w, "", -time.Second)
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me. Requires the Auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	user, err := h.users.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Session outlived the account
			writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		h.logger.Error("failed to load user", "error", err, "user_id", identity.UserID)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not load profile")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// setSessionCookie sets or clears the session cookie. A non-positive
// maxAge clears it.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge time.Duration) {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge > 0 {
		cookie.MaxAge = int(maxAge.Seconds())
	} else {
		cookie.MaxAge = -1
	}
	http.SetCookie(w, cookie)
}
