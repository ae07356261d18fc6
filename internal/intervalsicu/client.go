package intervalsicu

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrInvalidCredentials is returned when intervals.icu rejects the athlete
// id / API key pair (HTTP 401 or 403).
var ErrInvalidCredentials = errors.New("invalid intervals.icu credentials")

// API is the subset of the intervals.icu HTTP API this application consumes.
// Services depend on this interface so tests can substitute a fake.
type API interface {
	GetAthlete(ctx context.Context, athleteID, apiKey string) (Athlete, error)
	ListEvents(ctx context.Context, athleteID, apiKey string, oldest, newest time.Time) ([]Event, error)
}

// Client talks to the intervals.icu REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given base URL (e.g.
// "https://intervals.icu/api/v1"). A nil httpClient falls back to
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// intervals.icu uses HTTP basic auth with the literal username "API_KEY".
func basicAuth(apiKey string) string {
	creds := base64.StdEncoding.EncodeToString([]byte("API_KEY:" + apiKey))
	return "Basic " + creds
}

func (c *Client) get(ctx context.Context, apiKey, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", basicAuth(apiKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrInvalidCredentials
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("intervals.icu API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// athleteResponse also carries the split name fields some accounts return
// instead of a combined display name.
type athleteResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// GetAthlete fetches the athlete identified by athleteID, validating the
// credentials in the process.
func (c *Client) GetAthlete(ctx context.Context, athleteID, apiKey string) (Athlete, error) {
	var body athleteResponse
	if err := c.get(ctx, apiKey, "/athlete/"+url.PathEscape(athleteID), &body); err != nil {
		return Athlete{}, err
	}

	name := body.Name
	if name == "" {
		name = strings.TrimSpace(body.Firstname + " " + body.Lastname)
	}
	return Athlete{ID: body.ID, Name: name}, nil
}

const eventDateFormat = "2006-01-02"

// ListEvents returns the athlete's calendar events between oldest and newest
// (dates only, inclusive), filtered server-side to workout-category entries.
// The provider's ordering is preserved.
func (c *Client) ListEvents(ctx context.Context, athleteID, apiKey string, oldest, newest time.Time) ([]Event, error) {
	params := url.Values{}
	params.Set("oldest", oldest.Format(eventDateFormat))
	params.Set("newest", newest.Format(eventDateFormat))
	params.Set("category", "WORKOUT")

	var events []Event
	path := "/athlete/" + url.PathEscape(athleteID) + "/events?" + params.Encode()
	if err := c.get(ctx, apiKey, path, &events); err != nil {
		return nil, err
	}
	return events, nil
}
