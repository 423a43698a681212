// Package repository implements the data access layer for the prosn API.
//
// Each repository struct handles the SurrealQL for one aggregate: users,
// tags, posts (with their tag associations and reactions), solving
// records, and study groups (with membership and tag rows).
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, GetByID, ...)
//   - Parameterized queries with $variable syntax
//   - type::record() for safe ID handling, time::now() for timestamps
//   - Results are parsed and mapped to model structs
//
// # Atomicity
//
// Multi-statement writes (a post with its tag rows, a membership with
// its counter bump, a solve record with its point award) are built on
// database.AtomicBatch / TxBuilder so they commit or roll back as one
// transaction. Read-validate steps happen in the service layer before
// the batch executes.
//
// # Example Usage
//
//	repo := NewPostRepository(db)
//	post, err := repo.GetByID(ctx, "post:abc123")
//	if err != nil {
//	    return err
//	}
//	if post == nil {
//	    // not found
//	}
package repository
