// Package authhandlers carries the HTTP middleware and the host session
// endpoint.
package authhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	authjwt "github.com/open-mic-club/encore/app/modules/auth/infrastructure/jwt"
	"github.com/open-mic-club/encore/internal/attr"
)

// AuthHandlers serves host session issuance.
//
// Magic-link delivery is out of scope; this endpoint is the seam where a
// verified host identity becomes a bearer token.
type AuthHandlers struct {
	provider authjwt.Provider
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewAuthHandlers creates the auth handler set.
func NewAuthHandlers(provider authjwt.Provider, tokenTTL time.Duration, logger *slog.Logger) *AuthHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandlers{provider: provider, tokenTTL: tokenTTL, logger: logger}
}

type issueTokenRequest struct {
	HostID string `json:"hostId"`
}

type issueTokenResponse struct {
	Token     string    `json:"token"`
	HostID    string    `json:"hostId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HandleIssueHostToken issues a signed host session token.
func (h *AuthHandlers) HandleIssueHostToken(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	hostID := strings.TrimSpace(req.HostID)
	if hostID == "" {
		http.Error(w, "hostId is required", http.StatusBadRequest)
		return
	}

	token, err := h.provider.GenerateToken(hostID, h.tokenTTL)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to issue host token", attr.Error(err))
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(r.Context(), "Host token issued",
		attr.ExtractCorrelationID(r.Context()),
		attr.String("host_id", hostID),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(issueTokenResponse{
		Token:     token,
		HostID:    hostID,
		ExpiresAt: time.Now().Add(h.tokenTTL).UTC(),
	})
}
