package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
	"github.com/gorilla/mux"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinel errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrInviteInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrInviteExpired), errors.Is(err, common.ErrInviteExhausted):
		status = http.StatusForbidden
	default:
		status = http.StatusInternalServerError
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

type credentialsRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	InviteCode string `json:"invite_code,omitempty"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.users.Signup(r.Context(), req.Username, req.Password, req.InviteCode); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"username": req.Username})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

type leaderboardRow struct {
	Username string `json:"username"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := s.users.Leaderboard(r.Context(), s.config.LeaderboardSize)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rows := make([]leaderboardRow, len(board))
	for i, e := range board {
		rows[i] = leaderboardRow{Username: e.Username, XP: e.XP, Level: e.Level}
	}
	writeJSON(w, http.StatusOK, rows)
}

type profileResponse struct {
	Username  string `json:"username"`
	XP        int    `json:"xp"`
	Level     int    `json:"level"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	username := usernameFromContext(r.Context())

	p, err := s.users.Profile(r.Context(), username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// the stored value is an S3 object key, clients get a short-lived URL
	avatarURL, err := s.avatars.AvatarURL(r.Context(), username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Username: p.Username, XP: p.XP, Level: p.Level, AvatarURL: avatarURL,
	})
}

type taskResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Streak        int    `json:"streak"`
	LongestStreak int    `json:"longest_streak"`
	LastDone      string `json:"last_done,omitempty"`
	CreatedAt     string `json:"created_at"`
}

func toTaskResponse(t models.Task) taskResponse {
	return taskResponse{
		ID:            t.ID,
		Name:          t.Name,
		Streak:        t.Streak,
		LongestStreak: t.LongestStreak,
		LastDone:      string(t.LastDone),
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	username := usernameFromContext(r.Context())

	list, err := s.tasks.List(r.Context(), username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rows := make([]taskResponse, len(list))
	for i, t := range list {
		rows[i] = toTaskResponse(t)
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	username := usernameFromContext(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	task, err := s.tasks.Add(r.Context(), username, req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(*task))
}

type doneResponse struct {
	Outcome   string `json:"outcome"`
	Streak    int    `json:"streak"`
	XPGained  int    `json:"xp_gained"`
	XPTotal   int    `json:"xp_total"`
	Level     int    `json:"level"`
	LeveledUp bool   `json:"leveled_up"`
}

func (s *Server) handleMarkDone(w http.ResponseWriter, r *http.Request) {
	username := usernameFromContext(r.Context())
	taskID := mux.Vars(r)["id"]

	res, err := s.tasks.MarkDone(r.Context(), username, taskID, s.nowFn())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doneResponse{
		Outcome:   res.Outcome.String(),
		Streak:    res.NewStreak,
		XPGained:  res.XPGained,
		XPTotal:   res.XPTotal,
		Level:     res.Level,
		LeveledUp: res.LeveledUp,
	})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	username := usernameFromContext(r.Context())
	taskID := mux.Vars(r)["id"]

	if err := s.tasks.Delete(r.Context(), username, taskID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAvatarUpload(w http.ResponseWriter, r *http.Request) {
	username := usernameFromContext(r.Context())

	key, url, err := s.avatars.PresignUpload(r.Context(), username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "upload_url": url})
}

type inviteResponse struct {
	Code      string `json:"code"`
	Kind      string `json:"kind"`
	Uses      int    `json:"uses"`
	MaxUses   int    `json:"max_uses"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

func toInviteResponse(inv models.InviteToken) inviteResponse {
	resp := inviteResponse{
		Code:    inv.Code,
		Kind:    string(inv.Kind),
		Uses:    inv.Uses,
		MaxUses: inv.MaxUses,
	}
	if !inv.ExpiresAt.IsZero() {
		resp.ExpiresAt = inv.ExpiresAt.Format(time.RFC3339)
	}
	return resp
}

func (s *Server) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind       string `json:"kind"`
		Prefix     string `json:"prefix"`
		Uses       int    `json:"uses"`
		ExpireDays int    `json:"expire_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	kind := models.InviteKind(req.Kind)
	if kind != models.InviteSingle && kind != models.InviteMulti {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "kind must be single or multi"})
		return
	}

	inv, err := s.invites.Generate(r.Context(), kind, req.Prefix, req.Uses, req.ExpireDays)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInviteResponse(*inv))
}

func (s *Server) handleListInvites(w http.ResponseWriter, r *http.Request) {
	list, err := s.invites.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rows := make([]inviteResponse, len(list))
	for i, inv := range list {
		rows[i] = toInviteResponse(inv)
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handlePurgeInvites(w http.ResponseWriter, r *http.Request) {
	n, err := s.invites.Purge(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"purged": n})
}
