// Package fetch provides the HTTP client used to retrieve pages.
//
// # Behavior
//
// A fetch issues exactly one GET request, buffers the entire response body
// in memory, and decodes it to UTF-8 based on the response charset. There
// is no retry logic, no caching, and no redirect handling beyond what
// net/http does transparently.
//
// # Error classification
//
// Failures are classified into two closed kinds so that the entry point
// can map them to exit messages with errors.Is:
//
//   - ErrFetch: transport failures and non-success HTTP statuses
//   - ErrParse: response bodies that cannot be decoded to text
//
// A page without a <title> element is not an error at this layer; the
// body is returned as-is and the query happens in the page package.
package fetch
