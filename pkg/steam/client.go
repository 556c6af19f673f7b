package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"steamdex/pkg/logger"
)

// ErrorType classifies Steam API failures so callers can distinguish
// "confirmed not applicable" from "transient failure".
type ErrorType string

const (
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error represents a Steam API error.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("steam %s error (code %d): %s", e.Type, e.Code, e.Message)
}

// IsNotFound reports whether err is a confirmed not-found/not-applicable
// response rather than a transient failure.
func IsNotFound(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrorTypeNotFound
	}
	return false
}

// Client is a Steam Web API client. All methods are context-bound and
// enforce the configured request timeout.
type Client struct {
	http       *resty.Client
	apiKey     string
	language   string
	webAPIBase string
	storeBase  string
	logger     logger.Logger
}

// Options configures a Client.
type Options struct {
	APIKey    string
	UserAgent string
	// Language for store app details (affects category/genre descriptions
	// and the price currency).
	Language string
	Timeout  time.Duration
	// Base URL overrides, used by tests. Empty means the real Steam hosts.
	WebAPIBaseURL string
	StoreBaseURL  string
}

// NewClient creates a new Steam API client.
func NewClient(opts Options, log logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Language == "" {
		opts.Language = "japanese"
	}
	if opts.WebAPIBaseURL == "" {
		opts.WebAPIBaseURL = DefaultWebAPIBaseURL
	}
	if opts.StoreBaseURL == "" {
		opts.StoreBaseURL = DefaultStoreBaseURL
	}

	httpClient := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent)

	return &Client{
		http:       httpClient,
		apiKey:     opts.APIKey,
		language:   opts.Language,
		webAPIBase: opts.WebAPIBaseURL,
		storeBase:  opts.StoreBaseURL,
		logger:     log,
	}
}

// HasAPIKey reports whether the client was configured with a Web API key.
func (c *Client) HasAPIKey() bool { return c.apiKey != "" }

// getJSON performs a GET request and decodes the JSON body into target.
func (c *Client) getJSON(ctx context.Context, url string, params map[string]string, target interface{}) error {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(url)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"url":      url,
			"error":    err.Error(),
			"duration": duration,
		})
		return &Error{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Code:    0,
		}
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode(),
		"duration": duration,
	})

	if err := checkStatus(resp.StatusCode()); err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body(), target); err != nil {
		preview := string(resp.Body())
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode(),
			"error":        err.Error(),
			"body_preview": preview,
		})
		return &Error{
			Type:    ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse JSON: %v", err),
			Code:    resp.StatusCode(),
		}
	}

	return nil
}

// checkStatus maps an HTTP status code to a typed error.
func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return &Error{Type: ErrorTypeNotFound, Message: "resource not found", Code: code}
	case code == http.StatusTooManyRequests:
		return &Error{Type: ErrorTypeRateLimit, Message: "rate limit exceeded", Code: code}
	case code >= 500:
		return &Error{Type: ErrorTypeServerError, Message: "server error", Code: code}
	default:
		return &Error{Type: ErrorTypeUnknown, Message: fmt.Sprintf("unexpected status code: %d", code), Code: code}
	}
}

// GetAppList fetches the full universe of app identifiers. With an API key
// the paginated IStoreService endpoint is used (games only); without one it
// falls back to the legacy ISteamApps list.
func (c *Client) GetAppList(ctx context.Context) ([]int, error) {
	if c.apiKey != "" {
		return c.getAppListPaged(ctx)
	}

	c.logger.Info("no API key set, using legacy ISteamApps app list")

	var response appListResponse
	if err := c.getJSON(ctx, c.appListURL(), nil, &response); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(response.AppList.Apps))
	for _, app := range response.AppList.Apps {
		if app.AppID != 0 {
			ids = append(ids, app.AppID)
		}
	}

	c.logger.InfoWithFields("fetched app list", map[string]interface{}{
		"count": len(ids),
	})
	return ids, nil
}

// getAppListPaged walks the keyed IStoreService app list, games only,
// following the last_appid cursor with a one-second pause between pages.
func (c *Client) getAppListPaged(ctx context.Context) ([]int, error) {
	var ids []int
	lastAppID := 0

	for {
		params := map[string]string{
			"key":              c.apiKey,
			"include_games":    "1",
			"include_dlc":      "0",
			"include_software": "0",
			"last_appid":       strconv.Itoa(lastAppID),
			"max_results":      strconv.Itoa(storeListPageSize),
		}

		var page storeAppListResponse
		if err := c.getJSON(ctx, c.storeAppListURL(), params, &page); err != nil {
			// A partial list is still usable; stop paging on error like
			// the legacy behavior, unless we have nothing at all.
			if len(ids) > 0 {
				c.logger.WithError(err).Warn("app list pagination aborted, using partial list")
				return ids, nil
			}
			return nil, err
		}

		if len(page.Response.Apps) == 0 {
			break
		}
		for _, app := range page.Response.Apps {
			ids = append(ids, app.AppID)
		}

		c.logger.DebugWithFields("app list page fetched", map[string]interface{}{
			"total": len(ids),
		})

		if !page.Response.HaveMoreResults {
			break
		}
		lastAppID = page.Response.LastAppID

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}

	c.logger.InfoWithFields("fetched app list", map[string]interface{}{
		"count": len(ids),
	})
	return ids, nil
}

// GetPlayerCount fetches the current player count for an app. A response
// with result != 1 means the count is not applicable and is reported as a
// not-found error.
func (c *Client) GetPlayerCount(ctx context.Context, appID int) (int, error) {
	var response playerCountResponse
	params := map[string]string{"appid": strconv.Itoa(appID)}
	if err := c.getJSON(ctx, c.playerCountURL(), params, &response); err != nil {
		return 0, err
	}

	if response.Response.Result != 1 {
		return 0, &Error{
			Type:    ErrorTypeNotFound,
			Message: fmt.Sprintf("player count not available for app %d", appID),
			Code:    http.StatusOK,
		}
	}

	return response.Response.PlayerCount, nil
}

// GetAppDetails fetches store details for an app. success=false in the
// envelope is a confirmed not-found.
func (c *Client) GetAppDetails(ctx context.Context, appID int) (*AppDetails, error) {
	params := map[string]string{
		"appids": strconv.Itoa(appID),
		"l":      c.language,
	}

	var envelope map[string]appDetailsEnvelope
	if err := c.getJSON(ctx, c.appDetailsURL(), params, &envelope); err != nil {
		return nil, err
	}

	entry, ok := envelope[strconv.Itoa(appID)]
	if !ok || !entry.Success {
		return nil, &Error{
			Type:    ErrorTypeNotFound,
			Message: fmt.Sprintf("no store details for app %d", appID),
			Code:    http.StatusOK,
		}
	}

	details := &AppDetails{
		Name:       entry.Data.Name,
		Type:       entry.Data.Type,
		IsFree:     entry.Data.IsFree,
		Categories: make([]string, 0, len(entry.Data.Categories)),
		Genres:     make([]string, 0, len(entry.Data.Genres)),
	}
	for _, cat := range entry.Data.Categories {
		details.Categories = append(details.Categories, cat.Description)
	}
	for _, genre := range entry.Data.Genres {
		details.Genres = append(details.Genres, genre.Description)
	}

	// Price is reported in hundredths of the store currency. Free apps
	// have no price overview; paid apps without one have an unknown price.
	if entry.Data.PriceOverview != nil {
		price := float64(entry.Data.PriceOverview.Final) / 100
		details.PriceJPY = &price
	} else if entry.Data.IsFree {
		zero := 0.0
		details.PriceJPY = &zero
	}

	if entry.Data.Metacritic != nil {
		score := entry.Data.Metacritic.Score
		details.MetacriticScore = &score
	}

	return details, nil
}

// GetReviewSummary fetches the review counters for an app.
func (c *Client) GetReviewSummary(ctx context.Context, appID int) (*ReviewSummary, error) {
	url := c.storeBase + reviewsPath + strconv.Itoa(appID)
	params := map[string]string{
		"json":          "1",
		"language":      "all",
		"purchase_type": "all",
		"num_per_page":  "0",
	}

	var response reviewSummaryResponse
	if err := c.getJSON(ctx, url, params, &response); err != nil {
		return nil, err
	}

	return &ReviewSummary{
		TotalReviews:    response.QuerySummary.TotalReviews,
		PositiveReviews: response.QuerySummary.TotalPositive,
		NegativeReviews: response.QuerySummary.TotalNegative,
	}, nil
}

// GetAchievementCount fetches the number of achievements defined for an app.
func (c *Client) GetAchievementCount(ctx context.Context, appID int) (int, error) {
	params := map[string]string{"gameid": strconv.Itoa(appID)}

	var response achievementsResponse
	if err := c.getJSON(ctx, c.achievementsURL(), params, &response); err != nil {
		return 0, err
	}

	return len(response.AchievementPercentages.Achievements), nil
}
