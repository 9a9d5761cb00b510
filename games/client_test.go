package games_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/lossrank/games"
)

const seasonJSON = `[
  {"id": 1, "season": 2019, "week": 1, "home_team": "Alabama", "away_team": "Duke", "home_points": 42, "away_points": 3},
  {"id": 2, "season": 2019, "week": 1, "home_team": "Duke", "away_team": "Alabama", "home_points": null, "away_points": null}
]`

func TestFetchSeason(t *testing.T) {
	var gotPath, gotYear, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotYear = r.URL.Query().Get("year")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(seasonJSON))
	}))
	defer srv.Close()

	c := games.NewClient(
		games.WithBaseURL(srv.URL),
		games.WithAPIKey("secret"),
		games.WithHTTPClient(srv.Client()),
		games.WithRateLimit(rate.Inf, 1),
	)
	gs, err := c.FetchSeason(context.Background(), 2019)
	require.NoError(t, err)

	require.Equal(t, "/games", gotPath)
	require.Equal(t, "2019", gotYear)
	require.Equal(t, "Bearer secret", gotAuth)

	require.Len(t, gs, 2)
	require.Equal(t, "Alabama", gs[0].HomeTeam)
	require.Equal(t, 42.0, *gs[0].HomePoints)
	require.Nil(t, gs[1].HomePoints)
}

func TestFetchSeason_NoKeyNoAuthHeader(t *testing.T) {
	auth := "unset"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	gs, err := games.NewClient(games.WithBaseURL(srv.URL)).FetchSeason(context.Background(), 2020)
	require.NoError(t, err)
	require.Empty(t, gs)
	require.Empty(t, auth)
}

func TestFetchSeason_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("year") == "1999" {
			_, _ = w.Write([]byte(`{not json`))
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()
	c := games.NewClient(games.WithBaseURL(srv.URL), games.WithRateLimit(rate.Inf, 1))

	_, err := c.FetchSeason(context.Background(), 2019)
	require.ErrorIs(t, err, games.ErrUnexpectedStatus)
	require.ErrorContains(t, err, "status=401")

	_, err = c.FetchSeason(context.Background(), 1999)
	require.ErrorContains(t, err, "decode season 1999")

	_, err = c.FetchSeason(context.Background(), 0)
	require.ErrorContains(t, err, "invalid season")
}

func TestFetchSeason_RateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	// One token per hour: the first call spends the burst, the second must wait.
	c := games.NewClient(games.WithBaseURL(srv.URL), games.WithRateLimit(rate.Every(time.Hour), 1))
	_, err := c.FetchSeason(context.Background(), 2019)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.FetchSeason(ctx, 2019)
	require.ErrorContains(t, err, "rate limit")
}
