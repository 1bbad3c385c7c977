// Package gamma provides a read-only client for the Polymarket Gamma API.
//
// Endpoints used:
//   - GET /markets?slug={slug}   market descriptors matching a slug
//   - GET /events/slug/{slug}    event descriptor with nested markets
//
// Both return descriptor objects whose clobTokenIds field is shape-loose;
// extraction goes through the token normalizer.
package gamma
