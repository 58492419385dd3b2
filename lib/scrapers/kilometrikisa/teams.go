package kilometrikisa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/codes"
)

// publicTeamsLink derives the contest's public teams page from a
// my-teams row link: the contest slug is the link's last path segment.
func publicTeamsLink(teamLink string) string {
	trimmed := strings.TrimSuffix(teamLink, "/")
	i := strings.LastIndex(trimmed, "/")
	if i < 0 {
		return "/contests/" + teamLink + "/teams/"
	}
	return "/contests" + teamLink[i:] + "teams/"
}

// MyTeams lists the teams the logged-in user belongs to and resolves
// each team's numeric contest id with an independent concurrent fetch.
// Rows whose resolution failed are still returned with an empty
// ContestID; the per-team failures come back joined in err, so callers
// get partial results and the full failure picture at once.
func (c *Client) MyTeams(ctx context.Context) ([]TeamSummary, error) {
	ctx, span := tracer.Start(ctx, "client:MyTeams")
	defer span.End()

	doc, err := c.getDocument(ctx, myTeamsPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch my-teams page")
		return nil, err
	}
	teams, err := ParseMyTeams(doc)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	errs := make([]error, len(teams))
	wg := sync.WaitGroup{}
	for i := range teams {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			id, err := c.ContestID(ctx, publicTeamsLink(teams[i].Link))
			if err != nil {
				errs[i] = fmt.Errorf("team %q: %w", teams[i].TeamName, err)
				return
			}
			teams[i].ContestID = id
		}(i)
	}
	wg.Wait()

	err = errors.Join(errs...)
	if err != nil {
		span.SetStatus(codes.Error, "some contest ids could not be resolved")
	}
	return teams, err
}

// TeamResults fetches one team's page and parses its roster snapshot.
func (c *Client) TeamResults(ctx context.Context, teamLink string) (TeamStatus, error) {
	ctx, span := tracer.Start(ctx, "client:TeamResults")
	defer span.End()

	doc, err := c.getDocument(ctx, teamLink)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch team page")
		return TeamStatus{}, err
	}
	status, err := ParseTeamPage(doc)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return TeamStatus{}, err
	}
	return status, nil
}
