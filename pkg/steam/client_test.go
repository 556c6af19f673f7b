package steam

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points both API hosts at one httptest server.
func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Options{
		APIKey:        apiKey,
		WebAPIBaseURL: server.URL,
		StoreBaseURL:  server.URL,
	}, nil)
}

func TestGetAppListLegacy(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, appListPath, r.URL.Path)
		fmt.Fprint(w, `{"applist":{"apps":[
			{"appid":10,"name":"Counter-Strike"},
			{"appid":0,"name":""},
			{"appid":440,"name":"Team Fortress 2"}
		]}}`)
	})

	ids, err := client.GetAppList(context.Background())
	require.NoError(t, err)
	// App ID zero is a placeholder entry and is dropped.
	assert.Equal(t, []int{10, 440}, ids)
}

func TestGetAppListPaged(t *testing.T) {
	page := 0
	client := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, storeAppListPath, r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "1", r.URL.Query().Get("include_games"))
		assert.Equal(t, "0", r.URL.Query().Get("include_dlc"))

		page++
		switch page {
		case 1:
			assert.Equal(t, "0", r.URL.Query().Get("last_appid"))
			fmt.Fprint(w, `{"response":{"apps":[{"appid":10},{"appid":20}],"have_more_results":true,"last_appid":20}}`)
		default:
			assert.Equal(t, "20", r.URL.Query().Get("last_appid"))
			fmt.Fprint(w, `{"response":{"apps":[{"appid":30}],"have_more_results":false,"last_appid":30}}`)
		}
	})

	ids, err := client.GetAppList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, ids)
	assert.Equal(t, 2, page)
}

func TestGetAppListPagedPartialOnError(t *testing.T) {
	page := 0
	client := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		page++
		if page == 1 {
			fmt.Fprint(w, `{"response":{"apps":[{"appid":10}],"have_more_results":true,"last_appid":10}}`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	ids, err := client.GetAppList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{10}, ids)
}

func TestGetPlayerCount(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, playerCountPath, r.URL.Path)
		assert.Equal(t, "440", r.URL.Query().Get("appid"))
		fmt.Fprint(w, `{"response":{"player_count":52311,"result":1}}`)
	})

	count, err := client.GetPlayerCount(context.Background(), 440)
	require.NoError(t, err)
	assert.Equal(t, 52311, count)
}

func TestGetPlayerCountNotApplicable(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		// result=42 with HTTP 200 means "no count for this app".
		fmt.Fprint(w, `{"response":{"result":42}}`)
	})

	_, err := client.GetPlayerCount(context.Background(), 12345)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestGetAppDetails(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, appDetailsPath, r.URL.Path)
		assert.Equal(t, "570", r.URL.Query().Get("appids"))
		assert.Equal(t, "japanese", r.URL.Query().Get("l"))
		fmt.Fprint(w, `{"570":{"success":true,"data":{
			"type":"game","name":"Dota 2","is_free":true,
			"categories":[{"description":"Multi-player"}],
			"genres":[{"description":"Strategy"}],
			"metacritic":{"score":90}
		}}}`)
	})

	details, err := client.GetAppDetails(context.Background(), 570)
	require.NoError(t, err)
	assert.Equal(t, "Dota 2", details.Name)
	assert.Equal(t, "game", details.Type)
	assert.True(t, details.IsFree)
	assert.Equal(t, []string{"Multi-player"}, details.Categories)
	assert.Equal(t, []string{"Strategy"}, details.Genres)
	require.NotNil(t, details.MetacriticScore)
	assert.Equal(t, 90, *details.MetacriticScore)
	// Free titles report a zero price even without a price overview.
	require.NotNil(t, details.PriceJPY)
	assert.Equal(t, 0.0, *details.PriceJPY)
}

func TestGetAppDetailsPrice(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"400":{"success":true,"data":{
			"type":"game","name":"Portal","is_free":false,
			"price_overview":{"final":98000}
		}}}`)
	})

	details, err := client.GetAppDetails(context.Background(), 400)
	require.NoError(t, err)
	require.NotNil(t, details.PriceJPY)
	assert.Equal(t, 980.0, *details.PriceJPY)
}

func TestGetAppDetailsSuccessFalse(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"99999":{"success":false}}`)
	})

	_, err := client.GetAppDetails(context.Background(), 99999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestGetReviewSummary(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, reviewsPath+"440", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("num_per_page"))
		assert.Equal(t, "all", r.URL.Query().Get("language"))
		fmt.Fprint(w, `{"success":1,"query_summary":{
			"total_reviews":1000,"total_positive":930,"total_negative":70
		}}`)
	})

	summary, err := client.GetReviewSummary(context.Background(), 440)
	require.NoError(t, err)
	assert.Equal(t, 1000, summary.TotalReviews)
	assert.Equal(t, 930, summary.PositiveReviews)
	assert.Equal(t, 70, summary.NegativeReviews)
}

func TestGetAchievementCount(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, achievementsPath, r.URL.Path)
		assert.Equal(t, "440", r.URL.Query().Get("gameid"))
		fmt.Fprint(w, `{"achievementpercentages":{"achievements":[
			{"name":"a","percent":50},{"name":"b","percent":10}
		]}}`)
	})

	count, err := client.GetAchievementCount(context.Background(), 440)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusTooManyRequests, ErrorTypeRateLimit},
		{http.StatusBadGateway, ErrorTypeServerError},
		{http.StatusTeapot, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})
		_, err := client.GetPlayerCount(context.Background(), 1)
		require.Error(t, err)
		apiErr, ok := err.(*Error)
		require.True(t, ok, "status %d: expected *Error, got %T", tt.status, err)
		assert.Equal(t, tt.want, apiErr.Type, "status %d", tt.status)
	}
}

func TestParseErrorOnMalformedBody(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>maintenance</html>`)
	})

	_, err := client.GetPlayerCount(context.Background(), 1)
	require.Error(t, err)
	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeParsing, apiErr.Type)
}
