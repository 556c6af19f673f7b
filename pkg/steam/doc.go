// Package steam provides a client for the Steam Web API and the store
// front-end API.
//
// The client covers:
//   - The app catalog, either the legacy full list or the keyed,
//     paginated games-only list
//   - Store app details (type, pricing, categories, genres, Metacritic)
//   - Current player counts
//   - Review counters
//   - Achievement counts
//
// Failures carry a typed Error so callers can tell a confirmed
// not-found apart from a transient problem:
//
//	details, err := client.GetAppDetails(ctx, appID)
//	if err != nil {
//	    if steam.IsNotFound(err) {
//	        // the app has no store page; skip it for good
//	    }
//	    // network / server trouble; the item is skipped this run
//	}
//
// Several endpoints report absence inside an HTTP 200 body (success=false
// envelopes, result codes); the client normalizes all of those to
// not-found errors.
package steam
