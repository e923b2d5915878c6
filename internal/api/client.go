package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/LerianStudio/lib-commons/commons/log"
	cn "github.com/gestionpro/lib-license-go/constant"
	libErr "github.com/gestionpro/lib-license-go/error"
	"github.com/gestionpro/lib-license-go/internal/config"
	"github.com/gestionpro/lib-license-go/model"
)

//go:generate mockgen -source=client.go -destination=client_mock.go -package=api

// Doer sends a single HTTP request
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client handles communication with the license server
type Client struct {
	httpClient Doer
	config     *config.ClientConfig
	baseURL    string
	logger     log.Logger
}

// New creates a new API client. A nil httpClient gets a default *http.Client;
// the exchange deadline is enforced per request, not by the client.
func New(cfg *config.ClientConfig, httpClient Doer, logger log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		httpClient: httpClient,
		config:     cfg,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:     logger,
	}
}

// SetHTTPClient allows overriding the HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client Doer) {
	if client != nil {
		c.httpClient = client
	}
}

// Request performs one JSON exchange with the license server. It returns the
// status and parsed body whatever the status; interpreting them is the caller's job.
// Failures are *TransportError, *TimeoutError or *ParseError.
func (c *Client) Request(ctx context.Context, method, path string, body any) (model.Response, error) {
	url := c.baseURL + path

	var (
		payload []byte
		reader  io.Reader
	)

	if body != nil {
		var err error

		payload, err = json.Marshal(body)
		if err != nil {
			return model.Response{}, &libErr.TransportError{Method: method, URL: url, Err: fmt.Errorf("failed to marshal request body: %w", err)}
		}

		reader = bytes.NewReader(payload)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.config.HTTPTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, url, reader)
	if err != nil {
		return model.Response{}, &libErr.TransportError{Method: method, URL: url, Err: err}
	}

	req.Header.Set(cn.HeaderContentType, cn.MIMEApplicationJSON)
	req.Header.Set(cn.HeaderUserAgent, c.config.UserAgent())

	if payload != nil {
		req.Header.Set(cn.HeaderContentLength, strconv.Itoa(len(payload)))
	}

	c.logger.Debugf("License server request - %s %s", method, url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Response{}, c.classify(reqCtx, method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Response{}, c.classify(reqCtx, method, url, err)
	}

	if !json.Valid(raw) {
		excerpt := string(raw)
		if len(excerpt) > cn.MaxErrorBodyExcerpt {
			excerpt = excerpt[:cn.MaxErrorBodyExcerpt]
		}

		c.logger.Warnf("License server returned an invalid JSON body - %s %s status: %d", method, url, resp.StatusCode)

		return model.Response{}, &libErr.ParseError{
			StatusCode: resp.StatusCode,
			Body:       excerpt,
			Err:        errors.New("response body is not valid JSON"),
		}
	}

	c.logger.Debugf("License server response - %s %s status: %d", method, url, resp.StatusCode)

	return model.Response{Status: resp.StatusCode, Data: json.RawMessage(raw)}, nil
}

// classify turns a failed exchange into a timeout or transport error
func (c *Client) classify(ctx context.Context, method, url string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || libErr.IsTimeout(err) {
		c.logger.Warnf("License server request timed out - %s %s after %s", method, url, c.config.HTTPTimeout)

		return &libErr.TimeoutError{Method: method, URL: url, Timeout: c.config.HTTPTimeout, Err: err}
	}

	c.logger.Warnf("License server request failed - %s %s error: %s", method, url, err.Error())

	return &libErr.TransportError{Method: method, URL: url, Err: err}
}
