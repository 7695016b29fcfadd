// Package forex fetches batched currency quotes from the forex API.
//
// The Service wraps the raw client with a store-backed cache: a stored
// prices map younger than the configured TTL short-circuits the API call,
// and a stale one serves as fallback when the API is unavailable.
package forex
