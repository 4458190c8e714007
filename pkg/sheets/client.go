package sheets

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// ErrNoCredentials is returned when no credential blob is configured at all.
var ErrNoCredentials = errors.New("no Google credentials configured")

// Client provides read-only range access to the Google Sheets API.
type Client struct {
	svc *sheetsapi.Service
}

// NewClient builds a client from a JSON service-account credential blob.
// An empty or malformed blob fails construction; the caller is expected to
// treat that as degraded mode rather than a fatal error.
func NewClient(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	if len(credentialsJSON) == 0 {
		return nil, ErrNoCredentials
	}
	return newClient(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope),
	)
}

func newClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("couldn't build sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// FetchRange reads one range from a spreadsheet and returns the raw rows.
// A missing or empty range comes back as zero rows, not an error. The call
// is not retried; whatever the transport reports is wrapped and returned.
func (c *Client) FetchRange(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading range %q: %w", readRange, err)
	}
	return resp.Values, nil
}
