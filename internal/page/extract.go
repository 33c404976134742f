package page

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Info contains the metadata extracted from an HTML document.
type Info struct {
	// Title is the decoded text content of the first <title> element,
	// with surrounding whitespace trimmed. Empty when TitleFound is false.
	Title string

	// TitleFound reports whether a <title> element was present.
	// A present but empty <title></title> sets TitleFound with an empty
	// Title, which is distinct from no title at all.
	TitleFound bool

	// Description is the content attribute of <meta name="description">.
	Description string

	// Canonical is the href of <link rel="canonical">, if declared.
	Canonical string
}

// Extract parses the HTML document from r and returns its metadata.
// Entities in the title are decoded by the parser, so "A &amp; B" comes
// back as "A & B". A document without a <title> element is a normal
// result, not an error.
func Extract(r io.Reader) (*Info, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	info := &Info{}

	title := doc.Find("title").First()
	if title.Length() > 0 {
		info.Title = strings.TrimSpace(title.Text())
		info.TitleFound = true
	}

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		info.Description = strings.TrimSpace(desc)
	}

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		info.Canonical = strings.TrimSpace(href)
	}

	return info, nil
}
