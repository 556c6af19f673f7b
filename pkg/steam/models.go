package steam

// appListResponse is the legacy ISteamApps/GetAppList envelope.
type appListResponse struct {
	AppList struct {
		Apps []struct {
			AppID int    `json:"appid"`
			Name  string `json:"name"`
		} `json:"apps"`
	} `json:"applist"`
}

// storeAppListResponse is one page of the keyed IStoreService app list.
type storeAppListResponse struct {
	Response struct {
		Apps []struct {
			AppID int    `json:"appid"`
			Name  string `json:"name"`
		} `json:"apps"`
		HaveMoreResults bool `json:"have_more_results"`
		LastAppID       int  `json:"last_appid"`
	} `json:"response"`
}

// playerCountResponse is the GetNumberOfCurrentPlayers envelope. Result is 1
// on success; anything else means the count is not applicable for the app.
type playerCountResponse struct {
	Response struct {
		PlayerCount int `json:"player_count"`
		Result      int `json:"result"`
	} `json:"response"`
}

// appDetailsEnvelope is the per-app entry of the store appdetails response,
// which is keyed by the stringified app ID at the top level.
type appDetailsEnvelope struct {
	Success bool           `json:"success"`
	Data    appDetailsData `json:"data"`
}

type appDetailsData struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	IsFree     bool   `json:"is_free"`
	Categories []struct {
		Description string `json:"description"`
	} `json:"categories"`
	Genres []struct {
		Description string `json:"description"`
	} `json:"genres"`
	PriceOverview *struct {
		Final int `json:"final"`
	} `json:"price_overview"`
	Metacritic *struct {
		Score int `json:"score"`
	} `json:"metacritic"`
}

// reviewSummaryResponse is the store appreviews envelope with
// num_per_page=0, which returns only the query summary.
type reviewSummaryResponse struct {
	Success      int `json:"success"`
	QuerySummary struct {
		TotalReviews  int `json:"total_reviews"`
		TotalPositive int `json:"total_positive"`
		TotalNegative int `json:"total_negative"`
	} `json:"query_summary"`
}

// achievementsResponse is the GetGlobalAchievementPercentagesForApp envelope.
type achievementsResponse struct {
	AchievementPercentages struct {
		Achievements []struct {
			Name    string  `json:"name"`
			Percent float64 `json:"percent"`
		} `json:"achievements"`
	} `json:"achievementpercentages"`
}

// AppDetails is the subset of store app details the collector keeps.
type AppDetails struct {
	Name            string
	Type            string
	IsFree          bool
	Categories      []string
	Genres          []string
	PriceJPY        *float64
	MetacriticScore *int
}

// ReviewSummary holds the review counters for one app.
type ReviewSummary struct {
	TotalReviews    int
	PositiveReviews int
	NegativeReviews int
}
