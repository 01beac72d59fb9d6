package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"invotrack/internal/auth"
	"invotrack/internal/domain/tracker"
)

// AuthHandler bridges the authentication collaborator and the tracker's
// session reactions: every successful transition is forwarded to
// tracker.HandleSession.
type AuthHandler struct {
	authn auth.Authenticator
	svc   *tracker.Service
}

func NewAuthHandler(authn auth.Authenticator, svc *tracker.Service) *AuthHandler {
	return &AuthHandler{authn: authn, svc: svc}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	Session       *auth.Session `json:"session,omitempty"`
	SyncState     string        `json:"syncState"`
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, h.authn.SignIn)
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, h.authn.SignUp)
}

// authenticate runs one credential exchange and, on success, hands the new
// session to the tracker so the remote snapshot load kicks off.
func (h *AuthHandler) authenticate(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, email, password string) (*auth.Session, error)) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	sess, err := fn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	h.svc.HandleSession(sess)

	state, _ := h.svc.State()
	writeJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		Session:       sess,
		SyncState:     string(state),
	})
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.authn.SignOut(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "sign out failed")
		return
	}
	h.svc.HandleSession(nil)
	w.WriteHeader(http.StatusNoContent)
}

// Session reports the current session and sync lifecycle state.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess := h.authn.Session()
	state, _ := h.svc.State()
	writeJSON(w, http.StatusOK, sessionResponse{
		Authenticated: sess != nil,
		Session:       sess,
		SyncState:     string(state),
	})
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrAuthDisabled):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusBadGateway, "authentication service unavailable")
	}
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return credentialsRequest{}, false
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return credentialsRequest{}, false
	}
	return req, true
}
