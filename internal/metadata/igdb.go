package metadata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Henry-Sarabia/igdb/v2"
)

// twitchTokenURL issues IGDB app access tokens.
var twitchTokenURL = "https://id.twitch.tv/oauth2/token"

// IGDBProvider implements the Provider interface for IGDB.
type IGDBProvider struct {
	client *igdb.Client
}

// NewIGDBProvider creates a new IGDB provider.
// It automatically fetches an access token using the provided Client ID and Secret.
func NewIGDBProvider(clientID, clientSecret string) (*IGDBProvider, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("IGDB Client ID and Secret are required")
	}

	token, err := getTwitchToken(http.DefaultClient, clientID, clientSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with Twitch: %w", err)
	}

	client := igdb.NewClient(clientID, token, nil)
	return &IGDBProvider{client: client}, nil
}

func (p *IGDBProvider) Name() string {
	return "igdb"
}

func (p *IGDBProvider) Search(query string) ([]GameMetadata, error) {
	games, err := p.client.Games.Search(
		query,
		igdb.SetFields("id", "name", "summary", "first_release_date", "total_rating"),
		igdb.SetLimit(5),
	)
	if err != nil {
		return nil, err
	}

	results := make([]GameMetadata, 0, len(games))
	for _, g := range games {
		results = append(results, convertGame(g))
	}
	return results, nil
}

func convertGame(g *igdb.Game) GameMetadata {
	md := GameMetadata{
		ID:          fmt.Sprintf("igdb:%d", g.ID),
		Name:        g.Name,
		Description: g.Summary,
		Rating:      g.TotalRating,
	}
	if g.FirstReleaseDate != 0 {
		md.ReleaseDate = time.Unix(int64(g.FirstReleaseDate), 0).UTC().Format("2006-01-02")
	}
	return md
}

// getTwitchToken fetches an App Access Token from Twitch.
func getTwitchToken(hc *http.Client, clientID, clientSecret string) (string, error) {
	vals := url.Values{}
	vals.Set("client_id", clientID)
	vals.Set("client_secret", clientSecret)
	vals.Set("grant_type", "client_credentials")

	resp, err := hc.PostForm(twitchTokenURL, vals)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("empty access token")
	}

	return result.AccessToken, nil
}
