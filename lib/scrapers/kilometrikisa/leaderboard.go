package kilometrikisa

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardPage fetches one page of a contest's team leaderboard.
// `page` is 1-based, matching the site's page query parameter.
func (c *Client) LeaderboardPage(ctx context.Context, pageUrl string, page int) ([]LeaderboardEntry, error) {
	ctx, span := tracer.Start(ctx, "client:LeaderboardPage", trace.WithAttributes(
		attribute.Int("page", page),
	))
	defer span.End()

	doc, err := c.getDocument(ctx, fmt.Sprintf("%s&page=%d", pageUrl, page))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch leaderboard page")
		return nil, err
	}
	entries, err := ParseLeaderboardPage(doc)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("page %d: %w", page, err)
	}
	return entries, nil
}

// LeaderboardPages fetches pages 1..n concurrently and concatenates
// their rows strictly in page order, whatever order the fetches
// complete in. Any page failing fails the whole aggregate, partial
// leaderboards are never returned.
func (c *Client) LeaderboardPages(ctx context.Context, pageUrl string, n int) ([]LeaderboardEntry, error) {
	ctx, span := tracer.Start(ctx, "client:LeaderboardPages", trace.WithAttributes(
		attribute.Int("pages", n),
	))
	defer span.End()

	pages := make([][]LeaderboardEntry, n)
	errs := make([]error, n)
	wg := sync.WaitGroup{}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pages[i], errs[i] = c.LeaderboardPage(ctx, pageUrl, i+1)
		}(i)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		span.SetStatus(codes.Error, "leaderboard aggregate failed")
		return nil, err
	}

	var entries []LeaderboardEntry
	for _, page := range pages {
		entries = append(entries, page...)
	}
	return entries, nil
}
