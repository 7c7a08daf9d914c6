package secret

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"example.com/mastermind/internal/game"
)

const (
	DefaultRandomOrgURL     = "https://www.random.org"
	DefaultRandomOrgTimeout = 10 * time.Second
)

// APIError is a non-200 answer from random.org.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == http.StatusServiceUnavailable {
		return "random.org API error: " + e.Message
	}
	return fmt.Sprintf("random.org: unexpected HTTP status %d - %s", e.Status, e.Message)
}

// RandomOrg fetches true-random integers over the plain-text HTTP API.
type RandomOrg struct {
	BaseURL string
	Client  *http.Client
}

func NewRandomOrg(baseURL string, timeout time.Duration) *RandomOrg {
	if baseURL == "" {
		baseURL = DefaultRandomOrgURL
	}
	if timeout <= 0 {
		timeout = DefaultRandomOrgTimeout
	}
	return &RandomOrg{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (c *RandomOrg) Generate(ctx context.Context, shape game.Shape) (game.Sequence, error) {
	if err := shape.Validate(); err != nil {
		return game.Sequence{}, err
	}

	q := url.Values{}
	q.Set("num", strconv.Itoa(shape.Length))
	q.Set("min", strconv.Itoa(shape.Min))
	q.Set("max", strconv.Itoa(shape.Max))
	q.Set("col", "1")
	q.Set("base", "10")
	q.Set("format", "plain")
	q.Set("rnd", "new")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/integers/?"+q.Encode(), nil)
	if err != nil {
		return game.Sequence{}, fmt.Errorf("random.org: build request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return game.Sequence{}, fmt.Errorf("random.org: network error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return game.Sequence{}, fmt.Errorf("random.org: read body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return parsePlain(string(body), shape)
	case http.StatusServiceUnavailable:
		return game.Sequence{}, &APIError{Status: resp.StatusCode, Message: errorMessage(string(body))}
	default:
		return game.Sequence{}, &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
}

// parsePlain reads one integer per line.
func parsePlain(body string, shape game.Shape) (game.Sequence, error) {
	lines := strings.Fields(body)
	values := make([]int, 0, len(lines))
	for _, line := range lines {
		n, err := strconv.Atoi(line)
		if err != nil {
			return game.Sequence{}, fmt.Errorf("random.org: bad integer %q: %w", line, err)
		}
		values = append(values, n)
	}
	seq, err := game.NewSequence(values, shape)
	if err != nil {
		return game.Sequence{}, fmt.Errorf("random.org: %w", err)
	}
	return seq, nil
}

func errorMessage(body string) string {
	if strings.HasPrefix(body, "Error:") {
		return strings.TrimSpace(body)
	}
	return "unknown error from random.org API"
}
