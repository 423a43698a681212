// Package service implements the business rules of the prosn API.
//
// Services depend on narrow repository interfaces declared in this
// package and satisfied by internal/repository; handlers talk to
// services only. All errors that handlers are expected to branch on are
// sentinels in errors.go, checked with errors.Is.
//
// Mutating operations validate and read first, then hand the complete
// write set to a single repository call so the storage layer can commit
// it as one transaction.
package service
