// Package fetch provides the HTTP layer of the scraper: a rate-paced client
// that performs single GET requests and returns raw markup or a typed fetch
// failure, plus an exponential-backoff retry wrapper.
//
// The base Fetch operation never retries; retry policy is layered on top via
// FetchWithRetry so callers choose where a transient failure is worth the
// extra requests (page fetches) and where it is not (floorplan lookups,
// which fail soft anyway).
package fetch
