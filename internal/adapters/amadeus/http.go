package amadeus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"flight-meetup-service/internal/ports"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// newRequest builds an authenticated GET request for an API path with query
// parameters.
func (p *Provider) newRequest(ctx context.Context, path string, query map[string]string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	tok, err := p.token(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()

	return req, nil
}

func (p *Provider) do(req *http.Request) (*http.Response, error) {
	resp, err := p.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry executes a request under the rate limiter and retries
// transient failures (429, 5xx, network errors) with exponential backoff
// while respecting context cancellation.
//
// Terminal mapping: 401 surfaces as ports.ErrAuthentication after a single
// token refresh (expired tokens are not credential failures), 404 as
// ports.ErrNotFound, and a 429 that survives every attempt as
// ports.ErrRateLimited.
func (p *Provider) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error
	refreshedToken := false

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, err
		}

		resp, err := p.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		rateLimited := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusUnauthorized:
				if refreshedToken {
					return nil, fmt.Errorf("%w: %s", ports.ErrAuthentication, he.Body)
				}
				refreshedToken = true
				p.invalidateToken()
				retry = true
			case http.StatusNotFound:
				return nil, ports.ErrNotFound
			case http.StatusTooManyRequests:
				retry = true
				rateLimited = true
			case 500, 502, 503, 504:
				retry = true
			default:
				return nil, lastErr
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			if rateLimited {
				return nil, fmt.Errorf("%w: %s", ports.ErrRateLimited, he.Body)
			}
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

// getJSON runs an authenticated GET with retry and decodes the body into out.
func (p *Provider) getJSON(ctx context.Context, path string, query map[string]string, out any) error {
	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, path, query)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := decodeJSON(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
