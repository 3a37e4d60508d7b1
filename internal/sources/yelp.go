package sources

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/hollis/daybook/internal/apperr"
	"github.com/hollis/daybook/internal/dates"
	"github.com/hollis/daybook/internal/models"
)

// YelpSource reads a saved Yelp review page and extracts the review
// table: date, business name, rating, and comment columns.
type YelpSource struct {
	cfg FileConfig
}

// NewYelpSource creates a review source for the configured HTML file.
func NewYelpSource(cfg FileConfig) *YelpSource {
	return &YelpSource{cfg: cfg}
}

// Kind returns models.KindReview.
func (s *YelpSource) Kind() models.SourceKind { return models.KindReview }

// Records parses the saved page. Rows with an unparseable date are
// dropped and counted; unparseable ratings degrade to zero rather than
// dropping the review.
func (s *YelpSource) Records(_ context.Context) ([]models.DatedRecord, int, error) {
	f, err := os.Open(s.cfg.Path)
	if err != nil {
		return nil, 0, fmt.Errorf("sources: open %s: %w: %v", s.cfg.Path, apperr.ErrSourceUnavailable, err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, 0, fmt.Errorf("sources: parse %s: %w: %v", s.cfg.Path, apperr.ErrSourceUnavailable, err)
	}

	table := findElement(doc, "table")
	if table == nil {
		return nil, 0, fmt.Errorf("sources: no table in %s: %w", s.cfg.Path, apperr.ErrSourceUnavailable)
	}

	var out []models.DatedRecord
	var dropped int
	for _, row := range findAll(table, "tr") {
		if findElement(row, "th") != nil {
			continue // header row
		}
		cells := findAll(row, "td")
		if len(cells) < 4 {
			continue
		}
		day, err := dates.Normalize(nodeText(cells[0]))
		if err != nil {
			dropped++
			continue
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(nodeText(cells[2])), 64)
		if err != nil {
			rating = 0
		}
		out = append(out, models.DatedRecord{
			Date: day,
			Kind: models.KindReview,
			Payload: models.Review{
				Business: nodeText(cells[1]),
				Rating:   rating,
				Comment:  nodeText(cells[3]),
			},
		})
	}
	return out, dropped, nil
}

// findElement returns the first descendant element with the given tag,
// or nil.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant element with the given tag, in
// document order. Matched elements are not descended into, so nested
// tables do not double-count rows.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
			continue
		}
		out = append(out, findAll(c, tag)...)
	}
	return out
}

// nodeText concatenates and trims all text under a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
