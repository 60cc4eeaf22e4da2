// Package emulator is a local stand-in for the managed identity
// service. It serves the same accounts REST surface the production
// endpoint does, backed by an in-memory account table, so development
// environments and tests never need network access or real
// credentials.
package emulator

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gatehouseauth/gatehouse/pkg/cryptox"
	"github.com/gatehouseauth/gatehouse/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer   = "gatehouse-emulator"
	tokenTTL = time.Hour
)

type account struct {
	UID           string
	Email         string
	DisplayName   string
	PhotoURL      string
	PasswordHash  string
	EmailVerified bool
	Disabled      bool
}

// Server holds the in-memory account table and the HMAC key its ID
// tokens are signed with. All state is lost on restart, which is the
// point.
type Server struct {
	mu         sync.Mutex
	accounts   map[string]*account // keyed by uid
	signingKey []byte
	now        func() time.Time
}

func New() *Server {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(fmt.Sprintf("emulator: cannot seed signing key: %v", err))
	}
	return &Server{
		accounts:   make(map[string]*account),
		signingKey: key,
		now:        time.Now,
	}
}

// Handler returns the accounts REST surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/accounts:signUp", s.handleSignUp)
	mux.HandleFunc("POST /v1/accounts:update", s.handleUpdate)
	mux.HandleFunc("POST /v1/accounts:lookup", s.handleLookup)
	mux.HandleFunc("POST /v1/accounts:signInWithPassword", s.handleSignIn)
	return mux
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email         string `json:"email"`
		Password      string `json:"password"`
		DisplayName   string `json:"displayName"`
		PhotoURL      string `json:"photoUrl"`
		EmailVerified bool   `json:"emailVerified"`
		Disabled      bool   `json:"disabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PAYLOAD")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "MISSING_EMAIL_OR_PASSWORD")
		return
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "HASHING_FAILED")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByEmail(req.Email) != nil {
		writeError(w, http.StatusBadRequest, "email-already-exists")
		return
	}

	acct := &account{
		UID:           idx.New().String(),
		Email:         req.Email,
		DisplayName:   req.DisplayName,
		PhotoURL:      req.PhotoURL,
		PasswordHash:  hash,
		EmailVerified: req.EmailVerified,
		Disabled:      req.Disabled,
	}
	s.accounts[acct.UID] = acct

	writeJSON(w, http.StatusOK, acct.payload())
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PAYLOAD")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[req.LocalID]
	if !ok {
		writeError(w, http.StatusBadRequest, "USER_NOT_FOUND")
		return
	}
	if req.Email != "" && req.Email != acct.Email {
		if s.findByEmail(req.Email) != nil {
			writeError(w, http.StatusBadRequest, "email-already-exists")
			return
		}
		acct.Email = req.Email
	}
	acct.DisplayName = req.DisplayName

	writeJSON(w, http.StatusOK, acct.payload())
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PAYLOAD")
		return
	}

	uid, err := s.verifyIDToken(req.IDToken)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID_TOKEN")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[uid]
	if !ok {
		writeError(w, http.StatusBadRequest, "USER_NOT_FOUND")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users": []any{acct.payload()},
	})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email             string `json:"email"`
		Password          string `json:"password"`
		ReturnSecureToken bool   `json:"returnSecureToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PAYLOAD")
		return
	}

	s.mu.Lock()
	acct := s.findByEmail(req.Email)
	s.mu.Unlock()

	if acct == nil {
		writeError(w, http.StatusBadRequest, "EMAIL_NOT_FOUND")
		return
	}
	if acct.Disabled {
		writeError(w, http.StatusBadRequest, "USER_DISABLED")
		return
	}
	if err := cryptox.VerifyPassword(req.Password, acct.PasswordHash); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PASSWORD")
		return
	}

	idToken, err := s.mintIDToken(acct.UID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "TOKEN_MINT_FAILED")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"kind":         "identitytoolkit#VerifyPasswordResponse",
		"localId":      acct.UID,
		"email":        acct.Email,
		"displayName":  acct.DisplayName,
		"idToken":      idToken,
		"registered":   true,
		"refreshToken": idx.New().String(),
		"expiresIn":    "3600",
	})
}

// mintIDToken signs an HS256 ID token for the account. The emulator
// key is process-local, so these tokens only verify against the same
// emulator instance.
func (s *Server) mintIDToken(uid string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

func (s *Server) verifyIDToken(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// findByEmail requires s.mu to be held.
func (s *Server) findByEmail(email string) *account {
	for _, acct := range s.accounts {
		if acct.Email == email {
			return acct
		}
	}
	return nil
}

func (a *account) payload() map[string]any {
	return map[string]any{
		"localId":       a.UID,
		"email":         a.Email,
		"displayName":   a.DisplayName,
		"photoUrl":      a.PhotoURL,
		"emailVerified": a.EmailVerified,
		"disabled":      a.Disabled,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
