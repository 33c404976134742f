package model

import "time"

// Result represents the outcome of a single title lookup.
// It holds both the extracted page metadata and the response details
// needed by the report writers and the history store.
//
// Design decision: We keep the title as a string plus a TitleFound flag
// rather than a *string because:
//  1. "No title" is a normal, representable outcome, not an error
//  2. An empty title ("<title></title>") is distinct from a missing one
//  3. Avoids nil checks spreading through the report writers
type Result struct {
	// URL is the target URL exactly as supplied on the command line.
	URL string `json:"url"`

	// Title is the decoded text content of the first <title> element.
	// Empty when TitleFound is false.
	Title string `json:"title,omitempty"`

	// TitleFound reports whether a <title> element was present.
	TitleFound bool `json:"title_found"`

	// Description is the content of the meta description tag, if any.
	Description string `json:"description,omitempty"`

	// Canonical is the canonical link URL, if declared by the page.
	Canonical string `json:"canonical,omitempty"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// ContentType is the MIME type from the Content-Type header.
	ContentType string `json:"content_type,omitempty"`

	// FetchedAt is when the page was fetched.
	FetchedAt time.Time `json:"fetched_at"`

	// Elapsed is how long the fetch and parse took.
	Elapsed time.Duration `json:"elapsed"`
}

// NewResult creates a Result for the given URL with the fetch timestamp set.
func NewResult(url string) *Result {
	return &Result{
		URL:       url,
		FetchedAt: time.Now().UTC(),
	}
}

// SetTitle records an extracted title. An empty string is a valid title;
// call SetTitle only when a <title> element was actually found.
func (r *Result) SetTitle(title string) {
	r.Title = title
	r.TitleFound = true
}
