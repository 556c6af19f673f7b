package steam

// Default base URLs for the two Steam API hosts. The web API serves player
// counts, achievements and app lists; the store host serves app details and
// review summaries. Tests point both at an httptest server.
const (
	DefaultWebAPIBaseURL = "https://api.steampowered.com"
	DefaultStoreBaseURL  = "https://store.steampowered.com"
)

// Endpoint paths relative to their base URL.
const (
	appListPath      = "/ISteamApps/GetAppList/v2/"
	storeAppListPath = "/IStoreService/GetAppList/v1/"
	playerCountPath  = "/ISteamUserStats/GetNumberOfCurrentPlayers/v1/"
	achievementsPath = "/ISteamUserStats/GetGlobalAchievementPercentagesForApp/v2/"
	appDetailsPath   = "/api/appdetails"
	reviewsPath      = "/appreviews/"
)

// storeListPageSize is the page size for the keyed IStoreService app list.
const storeListPageSize = 50000

func (c *Client) appListURL() string      { return c.webAPIBase + appListPath }
func (c *Client) storeAppListURL() string { return c.webAPIBase + storeAppListPath }
func (c *Client) playerCountURL() string  { return c.webAPIBase + playerCountPath }
func (c *Client) achievementsURL() string { return c.webAPIBase + achievementsPath }
func (c *Client) appDetailsURL() string   { return c.storeBase + appDetailsPath }
