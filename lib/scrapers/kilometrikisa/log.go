package kilometrikisa

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/codes"
)

// UserResults fetches the user's daily logged kilometers for one
// contest year from the log_list_json feed. The query range spans
// Jan 1 to Dec 30 of the year, as Unix epoch seconds.
func (c *Client) UserResults(ctx context.Context, contestId string, year int) ([]LogEntry, error) {
	ctx, span := tracer.Start(ctx, "client:UserResults")
	defer span.End()

	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	end := time.Date(year, 12, 30, 0, 0, 0, 0, time.UTC).Unix()

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"start": strconv.FormatInt(start, 10),
			"end":   strconv.FormatInt(end, 10),
		}).
		Get(fmt.Sprintf("/contest/log_list_json/%s/", contestId))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch log feed")
		return nil, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
		return nil, fmt.Errorf("log feed fetch failed: %s", res.Status())
	}

	var feed []logFeedEntry
	err = json.Unmarshal(res.Body(), &feed)
	if err != nil {
		span.SetStatus(codes.Error, "log feed shape mismatch")
		return nil, fmt.Errorf("%w: log feed: %s", StructureMismatch, err)
	}
	return mapUserLog(feed)
}

// UpdateLog writes the kilometers for one day of a contest. A fresh
// csrf token is fetched for the post since the log form validates the
// same token echo as the login form.
func (c *Client) UpdateLog(ctx context.Context, contestId, kmDate string, km float64) error {
	ctx, span := tracer.Start(ctx, "client:UpdateLog")
	defer span.End()

	token, err := c.LoginToken(ctx)
	if err != nil {
		return err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"contest_id":          contestId,
			"km_date":             kmDate,
			"km_amount":           strconv.FormatFloat(km, 'f', -1, 64),
			"csrfmiddlewaretoken": token,
		}).
		SetHeader("Referer", c.loginUrl()).
		SetHeader("Cookie", "csrftoken="+token).
		Post(logSavePath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to post log entry")
		return err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
		return fmt.Errorf("log save failed: %s", res.Status())
	}
	return nil
}
