// Package model defines the domain entities, request/response types, and
// API error representations for the prosn service layer.
//
// Entities map one-to-one to SurrealDB tables; IDs are record IDs in the
// "table:id" form. Request types carry client input after the handler has
// decoded it; services validate them against business rules.
package model
