// Package provider holds clients for the external data sources behind lookups.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/wordser/wordser/internal/core"
)

const (
	// DefaultThesaurusURL is the Merriam-Webster collegiate thesaurus API.
	DefaultThesaurusURL = "https://www.dictionaryapi.com/api/v3/references/thesaurus/json"

	// DefaultThesaurusTimeout bounds a single thesaurus call.
	DefaultThesaurusTimeout = 10 * time.Second

	thesaurusSource = "thesaurus"
)

// ErrMissingCredential is returned when the thesaurus API key is not configured.
var ErrMissingCredential = errors.New("thesaurus api key is not configured")

// ThesaurusConfig configures a ThesaurusClient.
type ThesaurusConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// ThesaurusClient fetches raw thesaurus entries for a word. Each Fetch makes
// exactly one request; there are no retries.
type ThesaurusClient struct {
	client  *resty.Client
	apiKey  string
	baseURL string
}

// NewThesaurusClient builds a client. A blank API key is rejected here so the
// service can refuse to start rather than fail every request.
func NewThesaurusClient(cfg ThesaurusConfig) (*ThesaurusClient, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrMissingCredential
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultThesaurusURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid thesaurus base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultThesaurusTimeout
	}

	var client *resty.Client
	if cfg.HTTPClient != nil {
		client = resty.NewWithClient(cfg.HTTPClient)
	} else {
		client = resty.New()
	}
	client.
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &ThesaurusClient{client: client, apiKey: apiKey, baseURL: baseURL}, nil
}

// Source names the provider for logs and metrics.
func (c *ThesaurusClient) Source() string {
	return thesaurusSource
}

// Endpoint returns the base URL requests are sent to.
func (c *ThesaurusClient) Endpoint() string {
	return c.baseURL
}

// Fetch requests the thesaurus entries for word and returns the raw JSON body.
// Connection failures, non-2xx statuses and bodies that are not JSON are all
// reported as core.ErrProviderUnavailable.
func (c *ThesaurusClient) Fetch(ctx context.Context, word string) (core.RawPayload, error) {
	if c == nil || c.client == nil {
		return nil, fmt.Errorf("%w: thesaurus client is not configured", core.ErrProviderUnavailable)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("word", word).
		SetQueryParam("key", c.apiKey).
		Get("/{word}")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrProviderUnavailable, redact(err))
	}

	if !resp.IsSuccess() {
		return nil, &StatusError{Code: resp.StatusCode()}
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: thesaurus response is not valid JSON", core.ErrProviderUnavailable)
	}
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: thesaurus response is not valid UTF-8", core.ErrProviderUnavailable)
	}

	return core.RawPayload(body), nil
}

// StatusError reports a non-2xx thesaurus response. It matches
// core.ErrProviderUnavailable under errors.Is.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: thesaurus returned status %d", core.ErrProviderUnavailable, e.Code)
}

func (e *StatusError) Unwrap() error { return core.ErrProviderUnavailable }

// redact drops the request URL from transport errors so the API key carried
// in the query string never reaches logs.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return fmt.Errorf("%s thesaurus: %w", strings.ToLower(urlErr.Op), urlErr.Err)
	}
	return err
}
