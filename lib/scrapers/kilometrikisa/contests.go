package kilometrikisa

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"
)

// Contests lists all contests available on the site's front-page menu.
func (c *Client) Contests(ctx context.Context) ([]Contest, error) {
	ctx, span := tracer.Start(ctx, "client:Contests")
	defer span.End()

	doc, err := c.getDocument(ctx, "/")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch front page")
		return nil, err
	}
	return ParseContests(doc)
}

// LatestContest is the first entry of the contest menu.
func (c *Client) LatestContest(ctx context.Context) (Contest, error) {
	contests, err := c.Contests(ctx)
	if err != nil {
		return Contest{}, err
	}
	if len(contests) == 0 {
		return Contest{}, fmt.Errorf("%w: contest menu is empty", StructureMismatch)
	}
	return contests[0], nil
}

// ContestID resolves the internal numeric contest id of a contest
// teams page (as linked from the contest menu).
func (c *Client) ContestID(ctx context.Context, contestLink string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:ContestID")
	defer span.End()

	doc, err := c.getDocument(ctx, contestLink)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch contest teams page")
		return "", err
	}
	id, err := ParseContestId(doc)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("%s: %w", contestLink, err)
	}
	return id, nil
}

func (c *Client) LatestContestID(ctx context.Context) (string, error) {
	latest, err := c.LatestContest(ctx)
	if err != nil {
		return "", err
	}
	return c.ContestID(ctx, latest.Link)
}

const topListSort = "?sort=rank&order=asc"

func (c *Client) topListPage(ctx context.Context, category string) (string, error) {
	latest, err := c.LatestContest(ctx)
	if err != nil {
		return "", err
	}
	return c.BaseUrl.String() + latest.Link + category + topListSort, nil
}

// AllTeamsTopListPage returns the rank-sorted leaderboard url of the
// latest contest, suitable for LeaderboardPages.
func (c *Client) AllTeamsTopListPage(ctx context.Context) (string, error) {
	return c.topListPage(ctx, "")
}

func (c *Client) LargeTeamsTopListPage(ctx context.Context) (string, error) {
	return c.topListPage(ctx, "large/")
}

func (c *Client) PowerTeamsTopListPage(ctx context.Context) (string, error) {
	return c.topListPage(ctx, "power/")
}

func (c *Client) SmallTeamsTopListPage(ctx context.Context) (string, error) {
	return c.topListPage(ctx, "small/")
}
