package sis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"sisuva-scraper/internal/telemetry"

	"github.com/go-resty/resty/v2"
)

const (
	report_client_fetch = "client.fetch"
)

type Client struct {
	http      *resty.Client
	endpoints Endpoints
	tel       telemetry.API
}

// NewClient creates a client without any timeout or retries, a request blocks until the server
// answers or ctx is cancelled.
func NewClient(endpoints Endpoints, tel telemetry.API) Client {
	client := resty.New()
	telemetry.InstrumentResty(client, "sisuva-scraper/internal/sis", tel)
	return Client{
		http:      client,
		endpoints: endpoints,
		tel:       tel,
	}
}

func (c Client) Endpoints() Endpoints {
	return c.endpoints
}

// Fetch sends a single GET to link and returns the body if it is valid json.
func (c Client) Fetch(ctx context.Context, link string) (json.RawMessage, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch, fmt.Errorf("get: %w", err), link)
		return nil, fmt.Errorf("%w: get %s: %w", ErrNetwork, link, err)
	}

	body := res.Body()
	if !json.Valid(body) {
		c.tel.ReportBroken(
			report_client_fetch,
			errors.New("invalid json body"),
			link,
			res.Status(),
		)
		return nil, fmt.Errorf("%w: body of %s (%s) is not json", ErrMalformedResponse, link, res.Status())
	}
	if res.IsError() {
		c.tel.ReportWarning(report_client_fetch, "non-2xx status with json body", link, res.Status())
	}

	return json.RawMessage(body), nil
}

func (c Client) FetchDepartments(ctx context.Context, term Term) (json.RawMessage, error) {
	return c.Fetch(ctx, DepartmentsURL(c.endpoints, term))
}

func (c Client) FetchCourses(ctx context.Context, term Term, department string) (json.RawMessage, error) {
	return c.Fetch(ctx, CoursesURL(c.endpoints, term, department))
}
