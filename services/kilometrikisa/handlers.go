package kilometrikisa

import (
	"net/http"

	scraper "kilometrikisa-backend/lib/scrapers/kilometrikisa"

	"go.opentelemetry.io/otel/codes"
)

type userResponse struct {
	Nickname     string `json:"nickname"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Municipality string `json:"municipality"`
}

func toUserResponse(user scraper.User) userResponse {
	return userResponse{
		Nickname:     user.Nickname,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Municipality: user.Municipality,
	}
}

type contestResponse struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

func (s Service) handleContests(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleContests")
	defer span.End()

	client, err := s.newSession(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	contests, err := client.Contests(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, err)
		return
	}

	out := make([]contestResponse, len(contests))
	for i, c := range contests {
		out[i] = contestResponse{Name: c.Name, Link: c.Link}
	}
	writeJSON(ctx, w, out)
}

func (s Service) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleProfile")
	defer span.End()

	creds, ok := readJSON[credentials](w, r)
	if !ok {
		return
	}
	_, user, err := s.login(ctx, creds)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, toUserResponse(user))
}

type teamSummaryResponse struct {
	TeamName  string `json:"team_name"`
	Contest   string `json:"contest"`
	Time      string `json:"time"`
	Link      string `json:"link"`
	Year      string `json:"year"`
	ContestID string `json:"contest_id"`
}

type teamsResponse struct {
	Teams []teamSummaryResponse `json:"teams"`
	// Warnings carries per-team contest id resolution failures; the
	// affected teams are still listed, with an empty contest_id.
	Warnings []string `json:"warnings,omitempty"`
}

func (s Service) handleTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleTeams")
	defer span.End()

	creds, ok := readJSON[credentials](w, r)
	if !ok {
		return
	}
	client, _, err := s.login(ctx, creds)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, err)
		return
	}

	teams, err := client.MyTeams(ctx)
	if teams == nil && err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, err)
		return
	}

	out := teamsResponse{Teams: make([]teamSummaryResponse, len(teams))}
	for i, t := range teams {
		out.Teams[i] = teamSummaryResponse{
			TeamName:  t.TeamName,
			Contest:   t.Contest,
			Time:      t.Time,
			Link:      t.Link,
			Year:      t.Year,
			ContestID: t.ContestID,
		}
	}
	if err != nil {
		span.SetStatus(codes.Error, "some contest ids could not be resolved")
		out.Warnings = append(out.Warnings, err.Error())
	}
	writeJSON(ctx, w, out)
}

type teamResultsRequest struct {
	credentials
	TeamLink string `json:"team_link"`
}

type teamMemberResponse struct {
	Rank int     `json:"rank"`
	Name string  `json:"name"`
	Km   float64 `json:"km"`
	Days int     `json:"days"`
}

type teamStatusResponse struct {
	Name    string               `json:"name"`
	Rank    string               `json:"rank"`
	Results []teamMemberResponse `json:"results"`
}

func (s Service) handleTeamResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleTeamResults")
	defer span.End()

	req, ok := readJSON[teamResultsRequest](w, r)
	if !ok {
		return
	}
	client, _, err := s.login(ctx, req.credentials)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, err)
		return
	}

	status, err := client.TeamResults(ctx, req.TeamLink)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, err)
		return
	}

	out := teamStatusResponse{
		Name:    status.Name,
		Rank:    status.Rank,
		Results: make([]teamMemberResponse, len(status.Results)),
	}
	for i, member := range status.Results {
		out.Results[i] = teamMemberResponse{
			Rank: member.Rank,
			Name: member.Name,
			Km:   member.Km,
			Days: member.Days,
		}
	}
	writeJSON(ctx, w, out)
}

type resultsRequest struct {
	credentials
	ContestID string `json:"contest_id"`
	Year      int    `json:"year"`
}

type logEntryResponse struct {
	Date string  `json:"date"`
	Km   float64 `json:"km"`
}

func (s Service) handleResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleResults")
	defer span.End()

	req, ok := readJSON[resultsRequest](w, r)
	if !ok {
		return
	}
	client, _, err := s.login(ctx, req.credentials)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, err)
		return
	}

	entries, err := client.UserResults(ctx, req.ContestID, req.Year)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, err)
		return
	}

	out := make([]logEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = logEntryResponse{Date: e.Date, Km: e.Km}
	}
	writeJSON(ctx, w, out)
}

type leaderboardRequest struct {
	// ContestLink defaults to the latest contest when empty.
	ContestLink string `json:"contest_link"`
	Pages       int    `json:"pages"`
}

type leaderboardEntryResponse struct {
	Rank        int     `json:"rank"`
	Name        string  `json:"name"`
	KmPerPerson float64 `json:"km_per_person"`
	KmTotal     float64 `json:"km_total"`
	Days        float64 `json:"days"`
}

func (s Service) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleLeaderboard")
	defer span.End()

	req, ok := readJSON[leaderboardRequest](w, r)
	if !ok {
		return
	}
	if req.Pages < 1 {
		req.Pages = 1
	}

	client, err := s.newSession(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	pageUrl := ""
	if req.ContestLink != "" {
		pageUrl = client.BaseUrl.String() + req.ContestLink + "?sort=rank&order=asc"
	} else {
		pageUrl, err = client.AllTeamsTopListPage(ctx)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			writeError(ctx, w, err)
			return
		}
	}

	entries, err := client.LeaderboardPages(ctx, pageUrl, req.Pages)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, err)
		return
	}

	out := make([]leaderboardEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = leaderboardEntryResponse{
			Rank:        e.Rank,
			Name:        e.Name,
			KmPerPerson: e.KmPerPerson,
			KmTotal:     e.KmTotal,
			Days:        e.Days,
		}
	}
	writeJSON(ctx, w, out)
}

type logSaveRequest struct {
	credentials
	ContestID string  `json:"contest_id"`
	Date      string  `json:"date"`
	Km        float64 `json:"km"`
}

func (s Service) handleLogSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleLogSave")
	defer span.End()

	req, ok := readJSON[logSaveRequest](w, r)
	if !ok {
		return
	}
	client, _, err := s.login(ctx, req.credentials)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, err)
		return
	}

	err = client.UpdateLog(ctx, req.ContestID, req.Date, req.Km)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
