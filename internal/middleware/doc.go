// Package middleware provides the HTTP middleware chain for the prosn
// API: request IDs, structured request logging, panic recovery, CORS,
// gzip compression, token bucket rate limiting and the gateway auth
// boundary.
//
// Authentication itself happens upstream; Auth only trusts the
// X-User-ID header the gateway sets and exposes it via GetUserID.
package middleware
