// Package pexels provides an HTTP client for the Pexels photo search API.
//
// # Overview
//
// The client issues a single request shape:
//
//	GET <base>/v1/search?query=<query>&per_page=<n>
//	Authorization: <api key>
//
// and decodes the response into Photo records. The credential is passed on
// every call rather than stored, so the caller decides when a search may be
// attempted at all.
//
// # Error Handling
//
// Non-success statuses are returned as *APIError. When the body carries the
// documented {"error": "..."} shape its text is kept in APIError.Message;
// otherwise Message is empty and the caller chooses a generic message.
// Transport and decode failures are wrapped with %w.
//
// # Wire Types
//
//   - Photo: id, photographer, alt text and the Src size table
//   - PhotoID: accepts numeric and string ids
//   - SearchResponse / ErrorResponse: response envelopes
//
// DecodePhotos is shared with the local pre-fetched documents, which use the
// same envelope.
package pexels
