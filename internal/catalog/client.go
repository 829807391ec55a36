package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound is returned when the provider reports an invalid resource.
var ErrNotFound = errors.New("catalog: resource not found")

// tmdbNotFoundCode is the status_code TMDB uses for a missing resource.
const tmdbNotFoundCode = 34

// Client talks to the TMDB API. Key, base URL and poster base are
// injected; there is no package-level state.
type Client struct {
	apiKey     string
	baseURL    string
	posterBase string
	http       *http.Client
}

// New creates a TMDB client with a 10 second request timeout.
func New(apiKey, baseURL, posterBase string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		posterBase: posterBase,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// MediaSummary is one search result.
type MediaSummary struct {
	ExternalID    string  `json:"externalId"`
	MediaType     string  `json:"mediaType"`
	Title         string  `json:"title"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"posterPath"`
	ReleaseDate   string  `json:"releaseDate"`
	VoteAverage   float64 `json:"voteAverage"`
	PosterFullURL string  `json:"poster_full_url,omitempty"`
}

type searchResult struct {
	ID           int64   `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
}

type searchResponse struct {
	Page    int            `json:"page"`
	Results []searchResult `json:"results"`
}

// MediaDetails is the full details payload for one title.
type MediaDetails struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Name             string `json:"name"`
	OriginalTitle    string `json:"original_title"`
	OriginalName     string `json:"original_name"`
	Overview         string `json:"overview"`
	PosterPath       string `json:"poster_path"`
	ReleaseDate      string `json:"release_date"`
	FirstAirDate     string `json:"first_air_date"`
	OriginalLanguage string `json:"original_language"`
	Runtime          *int   `json:"runtime,omitempty"`
	NumberOfEpisodes *int   `json:"number_of_episodes,omitempty"`
	NumberOfSeasons  *int   `json:"number_of_seasons,omitempty"`
	Genres           []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	StatusCode int `json:"status_code,omitempty"`
}

// DisplayTitle returns the movie title or the series name.
func (d *MediaDetails) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// DisplayOriginalTitle returns the original movie title or series name.
func (d *MediaDetails) DisplayOriginalTitle() string {
	if d.OriginalTitle != "" {
		return d.OriginalTitle
	}
	return d.OriginalName
}

// DisplayReleaseDate returns the release date or the first air date.
func (d *MediaDetails) DisplayReleaseDate() string {
	if d.ReleaseDate != "" {
		return d.ReleaseDate
	}
	return d.FirstAirDate
}

// GenreNames flattens the genre objects into their names.
func (d *MediaDetails) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}

// Search queries TMDB. mediaType is movie, tv or multi; multi results
// are filtered to movie/tv entries that have a poster.
func (c *Client) Search(ctx context.Context, query, mediaType string) ([]MediaSummary, error) {
	if mediaType == "" {
		mediaType = "multi"
	}
	u, err := url.Parse(c.baseURL + "/search/" + mediaType)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse url: %w", err)
	}
	q := u.Query()
	q.Set("api_key", c.apiKey)
	q.Set("query", query)
	q.Set("include_adult", "false")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: search status %d", res.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("catalog: decode search response: %w", err)
	}

	summaries := make([]MediaSummary, 0, len(out.Results))
	for _, r := range out.Results {
		mt := r.MediaType
		if mt == "" {
			mt = mediaType // type-specific endpoints omit media_type
		}
		if (mt != "movie" && mt != "tv") || r.PosterPath == "" {
			continue
		}
		title := r.Title
		if title == "" {
			title = r.Name
		}
		release := r.ReleaseDate
		if release == "" {
			release = r.FirstAirDate
		}
		summaries = append(summaries, MediaSummary{
			ExternalID:    fmt.Sprint(r.ID),
			MediaType:     mt,
			Title:         title,
			Overview:      r.Overview,
			PosterPath:    r.PosterPath,
			ReleaseDate:   release,
			VoteAverage:   r.VoteAverage,
			PosterFullURL: c.PosterURL(r.PosterPath),
		})
	}
	return summaries, nil
}

// GetDetails fetches full details for one title. ErrNotFound is returned
// when the provider reports an invalid resource; every other failure is
// a transport problem the caller may treat as retryable.
func (c *Client) GetDetails(ctx context.Context, externalID, mediaType string) (*MediaDetails, error) {
	u := fmt.Sprintf("%s/%s/%s?api_key=%s", c.baseURL, mediaType, url.PathEscape(externalID), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: details: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: details status %d", res.StatusCode)
	}

	var out MediaDetails
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("catalog: decode details response: %w", err)
	}
	if out.StatusCode == tmdbNotFoundCode {
		return nil, ErrNotFound
	}
	return &out, nil
}

// PosterURL expands a poster path into a full display URL. An empty path
// stays empty.
func (c *Client) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.posterBase + posterPath
}
