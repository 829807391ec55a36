package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const posterBase = "https://image.tmdb.org/t/p/w500"

func TestClient_Search_FiltersMultiResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/multi", r.URL.Path)
		assert.Equal(t, "inception", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 27205, "media_type": "movie", "title": "Inception", "poster_path": "/inc.jpg", "release_date": "2010-07-15", "vote_average": 8.4},
				{"id": 525, "media_type": "person", "name": "Christopher Nolan", "poster_path": "/nolan.jpg"},
				{"id": 1396, "media_type": "tv", "name": "Breaking Bad", "poster_path": "/bb.jpg", "first_air_date": "2008-01-20"},
				{"id": 999, "media_type": "movie", "title": "No Poster Movie", "poster_path": ""}
			]
		}`))
	}))
	defer server.Close()

	c := New("test-key", server.URL, posterBase)
	results, err := c.Search(context.Background(), "inception", "multi")

	assert.NoError(t, err)
	assert.Len(t, results, 2)

	assert.Equal(t, "27205", results[0].ExternalID)
	assert.Equal(t, "movie", results[0].MediaType)
	assert.Equal(t, "Inception", results[0].Title)
	assert.Equal(t, "2010-07-15", results[0].ReleaseDate)
	assert.Equal(t, posterBase+"/inc.jpg", results[0].PosterFullURL)

	assert.Equal(t, "1396", results[1].ExternalID)
	assert.Equal(t, "tv", results[1].MediaType)
	assert.Equal(t, "Breaking Bad", results[1].Title)
	assert.Equal(t, "2008-01-20", results[1].ReleaseDate)
}

func TestClient_Search_TypeSpecificEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/tv", r.URL.Path)
		w.Write([]byte(`{"page": 1, "results": [{"id": 1396, "name": "Breaking Bad", "poster_path": "/bb.jpg"}]}`))
	}))
	defer server.Close()

	c := New("test-key", server.URL, posterBase)
	results, err := c.Search(context.Background(), "breaking bad", "tv")

	assert.NoError(t, err)
	// media_type is absent on type-specific endpoints, so the requested
	// type is assumed
	assert.Len(t, results, 1)
	assert.Equal(t, "tv", results[0].MediaType)
}

func TestClient_GetDetails(t *testing.T) {
	t.Run("movie details", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/movie/27205", r.URL.Path)
			w.Write([]byte(`{
				"id": 27205,
				"title": "Inception",
				"original_title": "Inception",
				"release_date": "2010-07-15",
				"original_language": "en",
				"runtime": 148,
				"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}]
			}`))
		}))
		defer server.Close()

		c := New("test-key", server.URL, posterBase)
		details, err := c.GetDetails(context.Background(), "27205", "movie")

		assert.NoError(t, err)
		assert.Equal(t, "Inception", details.DisplayTitle())
		assert.Equal(t, "2010-07-15", details.DisplayReleaseDate())
		assert.Equal(t, []string{"Action", "Science Fiction"}, details.GenreNames())
		assert.Equal(t, 148, *details.Runtime)
	})

	t.Run("tv details fall back to name fields", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/tv/1396", r.URL.Path)
			w.Write([]byte(`{
				"id": 1396,
				"name": "Breaking Bad",
				"original_name": "Breaking Bad",
				"first_air_date": "2008-01-20",
				"number_of_episodes": 62,
				"number_of_seasons": 5
			}`))
		}))
		defer server.Close()

		c := New("test-key", server.URL, posterBase)
		details, err := c.GetDetails(context.Background(), "1396", "tv")

		assert.NoError(t, err)
		assert.Equal(t, "Breaking Bad", details.DisplayTitle())
		assert.Equal(t, "Breaking Bad", details.DisplayOriginalTitle())
		assert.Equal(t, "2008-01-20", details.DisplayReleaseDate())
		assert.Equal(t, 62, *details.NumberOfEpisodes)
		assert.Equal(t, 5, *details.NumberOfSeasons)
	})

	t.Run("http 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		c := New("test-key", server.URL, posterBase)
		_, err := c.GetDetails(context.Background(), "999999", "movie")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("provider status_code 34", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status_code": 34, "status_message": "The resource you requested could not be found."}`))
		}))
		defer server.Close()

		c := New("test-key", server.URL, posterBase)
		_, err := c.GetDetails(context.Background(), "999999", "movie")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("upstream 500 is not a not-found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := New("test-key", server.URL, posterBase)
		_, err := c.GetDetails(context.Background(), "27205", "movie")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestClient_PosterURL(t *testing.T) {
	c := New("test-key", "https://api.example.com", posterBase)

	assert.Equal(t, posterBase+"/p.jpg", c.PosterURL("/p.jpg"))
	assert.Empty(t, c.PosterURL(""))
}
