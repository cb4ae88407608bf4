// ABOUTME: Feed autodiscovery from regular website URLs
// ABOUTME: Extracts alternate RSS/Atom link tags from HTML fetched through the safe fetcher

package ingest

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	coreerrors "podscout-api/core/errors"
)

// ErrNoFeedFound indicates a page carried no discoverable feed link.
var ErrNoFeedFound = errors.New("no feed link found")

// DiscoverFeedURL fetches siteURL through the safe fetcher and returns the
// first RSS/Atom feed URL it advertises. If the URL already serves a feed
// document it is returned as-is. Relative hrefs resolve against the final
// URL of the fetch, after redirects.
func (s *Service) DiscoverFeedURL(ctx context.Context, siteURL string) (string, error) {
	result, err := s.fetcher.Fetch(ctx, siteURL)
	if err != nil {
		return "", err
	}

	if looksLikeFeed(result.Body) {
		return result.FinalURL, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(result.Body))
	if err != nil {
		return "", coreerrors.WrapError(err, "parse HTML")
	}

	var feedHref string
	doc.Find(`link[rel="alternate"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		linkType, _ := sel.Attr("type")
		if !isFeedLinkType(linkType) {
			return true
		}
		href, ok := sel.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}
		feedHref = strings.TrimSpace(href)
		return false
	})

	if feedHref == "" {
		return "", ErrNoFeedFound
	}

	base, err := url.Parse(result.FinalURL)
	if err != nil {
		return "", coreerrors.WrapError(err, "parse final URL")
	}
	ref, err := url.Parse(feedHref)
	if err != nil {
		return "", coreerrors.WrapError(err, "parse feed href")
	}
	return base.ResolveReference(ref).String(), nil
}

func isFeedLinkType(linkType string) bool {
	t := strings.ToLower(linkType)
	return strings.Contains(t, "rss") || strings.Contains(t, "atom") || strings.Contains(t, "xml")
}

// looksLikeFeed sniffs whether a body is already an RSS/Atom document.
func looksLikeFeed(body []byte) bool {
	head := body
	if len(head) > 512 {
		head = head[:512]
	}
	trimmed := strings.TrimSpace(string(head))
	return strings.HasPrefix(trimmed, "<?xml") && (strings.Contains(trimmed, "<rss") || strings.Contains(trimmed, "<feed")) ||
		strings.HasPrefix(trimmed, "<rss") || strings.HasPrefix(trimmed, "<feed")
}
