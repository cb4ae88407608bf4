// ABOUTME: OPML outline parser that extracts a flat, deduplicated feed list
// ABOUTME: Tolerates arbitrary nesting and malformed attributes in untrusted uploads

package opml

import (
	"encoding/xml"
	"errors"
	"strings"

	"podscout-api/core/domain"
)

// Parse failure modes, distinguishable so callers can show a specific
// message for each.
var (
	ErrInvalidXML   = errors.New("invalid XML")
	ErrMissingRoot  = errors.New("missing <opml> root element")
	ErrMissingBody  = errors.New("missing <body> element")
	ErrNoFeedsFound = errors.New("no feeds found")
)

type document struct {
	XMLName xml.Name
	Body    *body `xml:"body"`
}

type body struct {
	Outlines []outline `xml:"outline"`
}

// outline is a single OPML outline node. Nested outlines decode into the
// Outlines slice whether the document carries one child or many.
type outline struct {
	Text     string    `xml:"text,attr"`
	Title    string    `xml:"title,attr"`
	XMLURL   string    `xml:"xmlUrl,attr"`
	HTMLURL  string    `xml:"htmlUrl,attr"`
	Outlines []outline `xml:"outline"`
}

// Parse converts an untrusted OPML document into a flat, deduplicated feed
// list. It is a pure function of its input: parsing the same bytes twice
// yields identical output.
//
// An outline with a non-blank xmlUrl attribute is a feed; its title falls
// back from the text attribute to the title attribute. Outlines without an
// xmlUrl contribute nothing themselves but their children are still
// visited, to arbitrary depth. Duplicate feed URLs (exact match after
// trimming) collapse to the first occurrence, preserving document order.
func Parse(data []byte) ([]domain.OpmlFeed, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, ErrInvalidXML
		}
		// No parseable root element at all.
		return nil, ErrMissingRoot
	}

	if !strings.EqualFold(doc.XMLName.Local, "opml") {
		return nil, ErrMissingRoot
	}
	if doc.Body == nil {
		return nil, ErrMissingBody
	}

	seen := make(map[string]bool)
	var feeds []domain.OpmlFeed
	var walk func(outlines []outline)
	walk = func(outlines []outline) {
		for _, o := range outlines {
			feedURL := strings.TrimSpace(o.XMLURL)
			if feedURL != "" && !seen[feedURL] {
				seen[feedURL] = true
				title := o.Text
				if title == "" {
					title = o.Title
				}
				feeds = append(feeds, domain.OpmlFeed{
					Title:   title,
					FeedURL: feedURL,
					HTMLURL: o.HTMLURL,
				})
			}
			if len(o.Outlines) > 0 {
				walk(o.Outlines)
			}
		}
	}
	walk(doc.Body.Outlines)

	if len(feeds) == 0 {
		return nil, ErrNoFeedsFound
	}
	return feeds, nil
}
