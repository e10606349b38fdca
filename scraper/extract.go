package scraper

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/pagescrape/models"
)

// ellipsis marks a preview taken from a page longer than the preview length.
const ellipsis = "…"

var (
	titleSel         = cascadia.MustCompile("title")
	descriptionSel   = cascadia.MustCompile(`meta[name="description"]`)
	robotsSel        = cascadia.MustCompile(`meta[name="robots"]`)
	ogTitleSel       = cascadia.MustCompile(`meta[property="og:title"]`)
	ogDescriptionSel = cascadia.MustCompile(`meta[property="og:description"]`)
	headingSel       = cascadia.MustCompile("h1, h2, h3")
)

// CollapseWhitespace replaces every run of whitespace with a single space and
// trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Extract pulls the metadata, headings and text preview out of doc.
//
// rawLength is the character length of the source HTML. The ellipsis is
// appended when rawLength exceeds previewLength, even if the collapsed text
// itself was short enough to keep whole.
func Extract(doc *goquery.Document, rawLength, previewLength int) *models.ScrapeResult {
	result := &models.ScrapeResult{
		Meta: models.Meta{
			Title:         CollapseWhitespace(doc.FindMatcher(titleSel).First().Text()),
			Description:   contentOf(doc, descriptionSel),
			Robots:        contentOf(doc, robotsSel),
			OGTitle:       contentOf(doc, ogTitleSel),
			OGDescription: contentOf(doc, ogDescriptionSel),
		},
		Headings: []string{},
	}

	doc.FindMatcher(headingSel).Each(func(_ int, s *goquery.Selection) {
		if text := CollapseWhitespace(s.Text()); text != "" {
			result.Headings = append(result.Headings, text)
		}
	})

	preview := truncateRunes(CollapseWhitespace(doc.Text()), previewLength)
	if rawLength > previewLength {
		preview += ellipsis
	}
	result.HTMLPreview = preview

	return result
}

// contentOf returns the collapsed content attribute of the first match.
func contentOf(doc *goquery.Document, sel cascadia.Selector) string {
	content, _ := doc.FindMatcher(sel).First().Attr("content")
	return CollapseWhitespace(content)
}

func truncateRunes(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
