// Package roadtax looks up the periodic road tax for a plate on an
// external form-based site and scrapes the amount for one jurisdiction
// out of the HTML result table.
package roadtax

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/rkeulen/autokosten/internal/config"
	"github.com/rkeulen/autokosten/internal/models"
)

type Client struct {
	url          string
	jurisdiction string
	http         *http.Client
}

func NewClient(cfg config.RoadTaxConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:          cfg.URL,
		jurisdiction: cfg.Jurisdiction,
		http:         &http.Client{Timeout: timeout},
	}
}

// Lookup submits the plate and extracts the jurisdiction's monthly
// amount from the response. A missing jurisdiction row is not an error:
// the result comes back with Found false and a zero amount.
func (c *Client) Lookup(ctx context.Context, plate string) (models.TaxAmount, error) {
	plate = models.NormalizePlate(plate)
	result := models.TaxAmount{
		Plate:        plate,
		Jurisdiction: c.jurisdiction,
		FetchedAt:    time.Now(),
	}

	form := url.Values{"kenteken": {plate}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return result, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return result, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return result, fmt.Errorf("parsing response: %w", err)
	}

	cell, ok := findJurisdictionCell(doc, c.jurisdiction)
	if !ok {
		return result, nil
	}
	result.MonthlyAmount = ParseAmount(cell)
	result.Found = true
	return result, nil
}

// findJurisdictionCell walks the parsed document for a table row whose
// first cell mentions the jurisdiction and returns the second cell's
// text.
func findJurisdictionCell(doc *html.Node, jurisdiction string) (string, bool) {
	want := strings.ToLower(jurisdiction)

	var result string
	var found bool
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode && n.Data == "tr" {
			cells := rowCells(n)
			if len(cells) >= 2 && strings.Contains(strings.ToLower(cells[0]), want) {
				result = cells[1]
				found = true
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return result, found
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for n := tr.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th") {
			cells = append(cells, strings.TrimSpace(nodeText(n)))
		}
	}
	return cells
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}
