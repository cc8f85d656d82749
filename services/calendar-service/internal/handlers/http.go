package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nathan-pruitt/openhouse/services/calendar-service/internal/ics"
	"github.com/nathan-pruitt/openhouse/services/calendar-service/internal/storage"
	"golang.org/x/oauth2"
)

type Handler struct {
	repo     *storage.Repository
	oauthCfg *oauth2.Config
	logger   *slog.Logger
}

func New(repo *storage.Repository, oauthCfg *oauth2.Config, logger *slog.Logger) *Handler {
	return &Handler{repo: repo, oauthCfg: oauthCfg, logger: logger}
}

func agentIDFromHeader(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Agent-Id"))
}

// Feed serves the agent's upcoming showings as text/calendar. The feed
// token in the query string is the only auth because calendar apps
// cannot send custom headers.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	agentID, ok, err := h.repo.AgentForFeedToken(r.Context(), token)
	if err != nil {
		http.Error(w, "failed to resolve feed token", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "unknown feed token", http.StatusNotFound)
		return
	}

	now := time.Now().UTC()
	events, err := h.repo.ListUpcoming(r.Context(), agentID, now, 200)
	if err != nil {
		http.Error(w, "failed to load events", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="showings.ics"`)
	_, _ = w.Write([]byte(ics.Feed(events, now)))
}

// FeedToken returns (minting on first call) the agent's feed token.
func (h *Handler) FeedToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	agentID := agentIDFromHeader(r)
	if agentID == "" {
		http.Error(w, "missing agent context", http.StatusBadRequest)
		return
	}

	token, err := h.repo.EnsureFeedToken(r.Context(), agentID)
	if err != nil {
		http.Error(w, "failed to issue feed token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":     token,
		"feed_path": "/api/v1/calendar/feed?token=" + token,
	})
}

// GoogleAuthURL hands the client the consent URL. The agent id rides in
// the state parameter and comes back on the callback.
func (h *Handler) GoogleAuthURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.oauthCfg == nil || h.oauthCfg.ClientID == "" {
		http.Error(w, "google calendar not configured", http.StatusNotImplemented)
		return
	}
	agentID := agentIDFromHeader(r)
	if agentID == "" {
		http.Error(w, "missing agent context", http.StatusBadRequest)
		return
	}

	url := h.oauthCfg.AuthCodeURL(agentID, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	writeJSON(w, http.StatusOK, map[string]any{"url": url})
}

// GoogleCallback exchanges the authorization code and stores the token.
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.oauthCfg == nil || h.oauthCfg.ClientID == "" {
		http.Error(w, "google calendar not configured", http.StatusNotImplemented)
		return
	}

	code := strings.TrimSpace(r.URL.Query().Get("code"))
	agentID := strings.TrimSpace(r.URL.Query().Get("state"))
	if code == "" || agentID == "" {
		http.Error(w, "code and state are required", http.StatusBadRequest)
		return
	}

	tok, err := h.oauthCfg.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("google oauth exchange failed", "err", err)
		http.Error(w, "failed to exchange authorization code", http.StatusBadGateway)
		return
	}

	if err := h.repo.SaveGoogleToken(r.Context(), agentID, tok); err != nil {
		http.Error(w, "failed to store token", http.StatusInternalServerError)
		return
	}

	h.logger.Info("google calendar connected", "agent_id", agentID)
	writeJSON(w, http.StatusOK, map[string]any{"status": "connected"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
