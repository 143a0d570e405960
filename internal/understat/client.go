package understat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Vina-13dev/FbrefBoT/internal/logger"
)

const defaultBaseURL = "https://understat.com"

// Client is the HTTP implementation of Source.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an Understat client against the production service.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a client against a specific base URL.
// Used by tests and by deployments that sit behind a caching proxy.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// LeagueTeams returns the roster of a league for a season.
func (c *Client) LeagueTeams(leagueCode, season string) ([]Team, error) {
	var teams []Team
	endpoint := fmt.Sprintf("%s/league/%s/%s/teams", c.baseURL, url.PathEscape(leagueCode), url.PathEscape(season))
	if err := c.getJSON(endpoint, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// TeamResults returns a team's season match history, most recent first.
func (c *Client) TeamResults(teamKey, season string) ([]Result, error) {
	var results []Result
	endpoint := fmt.Sprintf("%s/team/%s/%s/results", c.baseURL, url.PathEscape(teamKey), url.PathEscape(season))
	if err := c.getJSON(endpoint, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) getJSON(endpoint string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("understat returned status %d for %s", resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	logger.Debug("understat request", logger.Fields{"endpoint": endpoint})
	return nil
}
