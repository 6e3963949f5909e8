package card

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/markberger/rh-cc-exporter/pkg/config"
)

// Stage errors. Every remote failure wraps one of these so callers can
// assert on the failing stage with errors.Is.
var (
	ErrAuth              = errors.New("authentication failed")
	ErrCustomerLookup    = errors.New("customer lookup failed")
	ErrTransactionSearch = errors.New("transaction search failed")
)

// Client talks to the credit card provider's mobile API: the login endpoint
// and the GraphQL endpoint used by the app.
type Client struct {
	config *config.Config
	logger *log.Logger
	http   *http.Client
	tokens TokenSource
}

// New creates a Client using the endpoints and identification strings from
// cfg. Device tokens come from the default weak source; swap it with
// SetTokenSource if a stronger one is needed.
func New(cfg *config.Config, logger *log.Logger) *Client {
	return &Client{
		config: cfg,
		logger: logger,
		http:   &http.Client{Timeout: cfg.Timeout},
		tokens: NewWeakTokenSource(),
	}
}

// SetTokenSource replaces the device token generator.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// post sends body as JSON and decodes a 200 response into out. Non-200
// responses are drained and reported through the returned status code only;
// the caller decides which stage error applies.
func (c *Client) post(ctx context.Context, url string, headers map[string]string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

type graphqlRequest struct {
	Query         string `json:"query"`
	OperationName string `json:"operationName"`
	Variables     any    `json:"variables"`
}

// graphql posts one of the fixed GraphQL operations with bearer auth.
func (c *Client) graphql(ctx context.Context, token, operation, query string, variables, out any) (int, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"User-Agent":    c.config.APIUserAgent,
		"x-x1-client":   c.config.APIClient,
	}
	body := graphqlRequest{
		Query:         query,
		OperationName: operation,
		Variables:     variables,
	}
	return c.post(ctx, c.config.GraphQLURL, headers, body, out)
}
