package planner

import (
	"bytes"
	"context"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPPlanner implements TripPlanner by posting the request to a planning
// endpoint. Any transport error, non-2xx status or undecodable body is
// returned as an error so callers can fall back to a local estimate.
//
// The planner is safe for concurrent use.
type HTTPPlanner struct {
	session     *http.Client
	endpoint    string
	maxAttempts int
	backoff     time.Duration
}

func NewHTTPPlanner(endpoint string, timeout time.Duration) (*HTTPPlanner, error) {
	if endpoint == "" {
		return nil, errors.New("planner endpoint is empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("planner endpoint %q is not an absolute URL", endpoint)
	}

	return &HTTPPlanner{
		session:     &http.Client{Timeout: timeout},
		endpoint:    endpoint,
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}, nil
}

func (p *HTTPPlanner) PlanTrip(ctx context.Context, tr domain.TripRequest) (_ *domain.TripResult, err error) {
	defer obs.Time(ctx, "planner.PlanTrip")(&err)

	body, err := json.Marshal(tr)
	if err != nil {
		return nil, fmt.Errorf("plan trip: encode request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	})
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	defer resp.Body.Close()

	var res domain.TripResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("plan trip: decode response: %w", err)
	}
	if len(res.Route.Legs) == 0 || len(res.ELDLogs) == 0 {
		return nil, errors.New("plan trip: response has no legs or logs")
	}

	return &res, nil
}
