package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/slackpulse/internal/aggregate"
	"github.com/dmitrijs2005/slackpulse/internal/models"
	"github.com/dmitrijs2005/slackpulse/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

const (
	minDays = 1
	maxDays = 365
)

// seriesInfo describes one charted user: identity plus its palette colors.
type seriesInfo struct {
	models.User
	Fill   string `json:"fill"`
	Stroke string `json:"stroke"`
}

// activityResponse is the payload consumed by the chart renderer.
type activityResponse struct {
	Users []seriesInfo     `json:"users"`
	Day   aggregate.Series `json:"day"`
	Week  aggregate.Series `json:"week"`
	Month aggregate.Series `json:"month"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleActivity serves GET /api/activity?days=N: the three aggregated views
// over the last N days for every tracked user.
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	days := s.cfg.HistoryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "days must be an integer")
			return
		}
		days = parsed
	}
	if days < minDays {
		days = minDays
	}
	if days > maxDays {
		days = maxDays
	}

	chartUsers, err := s.chartUsers(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list users", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	dates := aggregate.LastNDays(days, time.Now())
	byUser, err := s.counts.QueryRange(ctx, dates[0], dates[len(dates)-1])
	if err != nil {
		s.logger.Error(ctx, "failed to query counts", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to query counts")
		return
	}

	views, err := aggregate.BuildViews(byUser, chartUsers, dates)
	if err != nil {
		var tooMany *aggregate.TooManySeriesError
		if errors.As(err, &tooMany) {
			writeError(w, http.StatusBadRequest, tooMany.Error())
			return
		}
		s.logger.Error(ctx, "failed to build views", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to build views")
		return
	}

	resp := activityResponse{
		Users: make([]seriesInfo, len(chartUsers)),
		Day:   views.Day,
		Week:  views.Week,
		Month: views.Month,
	}
	for i, u := range chartUsers {
		fill, stroke := aggregate.SeriesColor(i)
		resp.Users[i] = seriesInfo{User: u, Fill: fill, Stroke: stroke}
	}

	writeJSON(w, http.StatusOK, resp)
}

// chartUsers returns the users to chart: the configured IDs with stored
// display names, falling back to the raw ID before the first sync has
// resolved a name. With no configured list the whole directory is charted.
func (s *Server) chartUsers(ctx context.Context) ([]models.User, error) {
	stored, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(s.cfg.SlackUserIDs) == 0 {
		return stored, nil
	}

	names := make(map[string]string, len(stored))
	for _, u := range stored {
		names[u.ID] = u.Name
	}

	result := make([]models.User, 0, len(s.cfg.SlackUserIDs))
	for _, id := range s.cfg.SlackUserIDs {
		name := names[id]
		if name == "" {
			name = id
		}
		result = append(result, models.User{ID: id, Name: name})
	}
	return result, nil
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// handleLogin serves POST /api/login: admin credentials in, bearer token out.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Login != s.cfg.AdminUser ||
		bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, shared.ErrorInvalidLoginPassword.Error())
		return
	}

	token, err := GenerateToken(req.Login, []byte(s.cfg.SecretKey), s.cfg.AccessTokenValidityDuration)
	if err != nil {
		s.logger.Error(r.Context(), "failed to sign token", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

// handleSync serves POST /api/sync: runs one pass over the configured users
// and returns its summary.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	summary, err := s.runner.RunPass(r.Context(), s.cfg.SlackUserIDs)
	if err != nil {
		if errors.Is(err, shared.ErrorNoUsers) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error(r.Context(), "sync pass failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "sync pass failed")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
