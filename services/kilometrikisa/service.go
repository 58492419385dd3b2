package kilometrikisa

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	scraper "kilometrikisa-backend/lib/scrapers/kilometrikisa"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/kilometrikisa")

// Service exposes the scraper as a JSON-over-HTTP surface. It is
// stateless: every request opens its own scraping session against the
// contest site and nothing is persisted or cached in between.
type Service struct {
	baseUrl string
}

func NewService(baseUrl string) Service {
	return Service{baseUrl: baseUrl}
}

func (s Service) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/contests", s.handleContests)
	mux.HandleFunc("POST /v1/profile", s.handleProfile)
	mux.HandleFunc("POST /v1/teams", s.handleTeams)
	mux.HandleFunc("POST /v1/team-results", s.handleTeamResults)
	mux.HandleFunc("POST /v1/results", s.handleResults)
	mux.HandleFunc("POST /v1/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("POST /v1/log-save", s.handleLogSave)
}

func (s Service) newSession(ctx context.Context) (*scraper.Client, error) {
	return scraper.NewClient(ctx, scraper.ClientOptions{BaseUrl: s.baseUrl})
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login opens a fresh session and authenticates it. Login must finish
// before the session is used concurrently.
func (s Service) login(ctx context.Context, creds credentials) (*scraper.Client, scraper.User, error) {
	client, err := s.newSession(ctx)
	if err != nil {
		return nil, scraper.User{}, err
	}
	user, err := client.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		return nil, scraper.User{}, err
	}
	return client, user, nil
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, scraper.InvalidCredentials),
		errors.Is(err, scraper.NotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, scraper.TokenNotFound),
		errors.Is(err, scraper.ContestIdNotFound),
		errors.Is(err, scraper.StructureMismatch),
		errors.Is(err, scraper.InvalidNumber):
		// the upstream site changed shape or replied with garbage
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	slog.ErrorContext(ctx, "request failed", "err", err)
	http.Error(w, err.Error(), statusFromError(err))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(value)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "err", err)
	}
}

func readJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var out T
	err := json.NewDecoder(r.Body).Decode(&out)
	if err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return out, false
	}
	return out, true
}
