// Package handler exposes the prosn API over HTTP.
//
// Handlers decode requests, call the service layer and write responses.
// Success bodies use a {"data": ...} envelope; failures use RFC 9457
// Problem Details produced by MapServiceError, so every sentinel the
// service layer returns maps to one status code in one place.
package handler
