package distance

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// apiStatusError carries a non-OK status field from a Maps API response
// body. The HTTP layer reports 200 for these, so classification happens
// on the decoded status.
type apiStatusError struct {
	Status  string
	Message string
}

func (e *apiStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api status %s", e.Status)
	}
	return fmt.Sprintf("api status %s: %s", e.Status, e.Message)
}

func (g *GoogleMapsProvider) newRequest(
	ctx context.Context,
	path string,
	params url.Values,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	params.Set("key", g.apiKey)
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (g *GoogleMapsProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := g.session.Do(req)
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

// checkAPIStatus maps a non-OK top-level API status to an error that the
// retry classifier understands.
func checkAPIStatus(status string, message string) error {
	if status == "OK" {
		return nil
	}
	return &apiStatusError{Status: status, Message: message}
}
