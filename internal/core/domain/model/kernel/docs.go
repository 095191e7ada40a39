// Package kernel provides shared value objects for the fulfillment domain.
//
// The package includes:
//   - UUID: identity value object wrapping github.com/google/uuid
//   - GeoPoint: validated geographic coordinates (latitude/longitude)
//   - Ref: compatibility shim that normalizes dual-shape identity references
//     (a raw string id or a structured object with an "id" field) into UUID
//   - Role: caller role used by authorization checks
//
// All value objects are immutable and must be created through their
// constructor functions; zero values fail validation.
package kernel
