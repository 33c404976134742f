// Package page extracts metadata from HTML documents.
//
// The extraction is a pure function over the buffered document text: it
// performs no network I/O, which keeps it testable with fixture HTML
// strings. The title query uses first-match semantics; when a document
// contains multiple <title> elements, only the first one counts.
//
// Design decision: We use github.com/PuerkitoBio/goquery rather than
// walking the golang.org/x/net/html tree by hand because:
//  1. The lookup is a selector query ("title", first match), which is
//     exactly what goquery provides
//  2. goquery builds on x/net/html, so malformed real-world HTML is
//     handled the same way
//  3. The meta and link queries stay one-liners
package page
