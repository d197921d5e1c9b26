// Package restapi talks to a hosted table backend that exposes every table
// as a REST resource under /rest/v1 (the PostgREST dialect).
package restapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	restPrefix = "rest/v1"

	headerAPIKey  = "apikey"
	headerPrefer  = "Prefer"
	headerAccept  = "Accept"
	mediaJSON     = "application/json"
	mediaSingular = "application/vnd.pgrst.object+json"

	preferMinimal = "return=minimal"
	preferUpsert  = "resolution=merge-duplicates,return=minimal"
)

// Client issues row-level requests against named tables.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient returns a Client for the project at rawURL. A zero timeout
// leaves requests bounded only by the caller's context.
func NewClient(rawURL, apiKey string, timeout time.Duration) (Client, error) {
	const op = "restapi.NewClient"

	u, err := url.Parse(rawURL)
	if err != nil {
		return Client{}, fmt.Errorf("%s: %w", op, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Client{}, fmt.Errorf("%s: invalid url %q", op, rawURL)
	}
	if apiKey == "" {
		return Client{}, fmt.Errorf("%s: empty api key", op)
	}

	return Client{
		baseURL:    u,
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{},
	}, nil
}

type request struct {
	method string
	table  string
	query  url.Values
	prefer string
	accept string
	body   any
}

func eq(id string) url.Values {
	return url.Values{"id": {"eq." + id}}
}

// selectAll decodes every row of table into dst ordered by order, e.g.
// "created_at.desc".
func (c Client) selectAll(
	ctx context.Context, table, order string, dst any,
) error {
	q := url.Values{"select": {"*"}}
	if order != "" {
		q.Set("order", order)
	}
	return c.do(ctx, request{
		method: http.MethodGet,
		table:  table,
		query:  q,
	}, dst)
}

// selectOne decodes the single row with the given id. A missing row is
// reported by the backend as an [*Error] with code [CodeNoRows].
func (c Client) selectOne(
	ctx context.Context, table, id string, dst any,
) error {
	q := eq(id)
	q.Set("select", "*")
	return c.do(ctx, request{
		method: http.MethodGet,
		table:  table,
		query:  q,
		accept: mediaSingular,
	}, dst)
}

func (c Client) insert(ctx context.Context, table string, row any) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		table:  table,
		prefer: preferMinimal,
		body:   []any{row},
	}, nil)
}

func (c Client) upsert(ctx context.Context, table string, row any) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		table:  table,
		prefer: preferUpsert,
		body:   []any{row},
	}, nil)
}

func (c Client) update(ctx context.Context, table, id string, row any) error {
	return c.do(ctx, request{
		method: http.MethodPatch,
		table:  table,
		query:  eq(id),
		prefer: preferMinimal,
		body:   row,
	}, nil)
}

func (c Client) delete(ctx context.Context, table, id string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		table:  table,
		query:  eq(id),
		prefer: preferMinimal,
	}, nil)
}

func (c Client) do(ctx context.Context, r request, dst any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode >= http.StatusMultipleChoices {
		return newError(res.StatusCode, data)
	}

	if dst == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s rows: %w", r.table, err)
	}
	return nil
}

func (c Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	u := c.baseURL.JoinPath(restPrefix, r.table)
	u.RawQuery = r.query.Encode()

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s row: %w", r.table, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if r.body != nil {
		req.Header.Set("Content-Type", mediaJSON)
	}
	accept := r.accept
	if accept == "" {
		accept = mediaJSON
	}
	req.Header.Set(headerAccept, accept)
	if r.prefer != "" {
		req.Header.Set(headerPrefer, r.prefer)
	}
	return req, nil
}
