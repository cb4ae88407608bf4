// ABOUTME: OPML domain models for imported feed subscription lists
// ABOUTME: Represents one feed extracted from an OPML outline document

package domain

// OpmlFeed represents a single feed extracted from an OPML document.
type OpmlFeed struct {
	// Title is the feed's display name. Empty when the outline carried
	// neither a text nor a title attribute.
	Title string `json:"title,omitempty"`

	// FeedURL is the trimmed, non-empty feed URL. It is the dedup key.
	FeedURL string `json:"feedUrl"`

	// HTMLURL is the human-facing page link, carried verbatim if present.
	HTMLURL string `json:"htmlUrl,omitempty"`
}
