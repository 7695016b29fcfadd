// Package binance fetches order-book depth from the crypto exchange API.
//
// Requests are routed through a public CORS relay proxy with a browser-like
// User-Agent, matching how the hosted deployment reaches the exchange.
package binance
