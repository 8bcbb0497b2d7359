// Package scrape harvests number/frequency rows from a results web page.
package scrape

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single page request.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies the client to the remote site.
	DefaultUserAgent = "lottopick/1.0"
)

// DefaultRateLimit allows one request per second.
var DefaultRateLimit = rate.Every(time.Second)

// ErrNoRows reports a page without any number/frequency table rows.
var ErrNoRows = errors.New("scrape: no frequency rows found")

// Options configures a Client.
type Options struct {
	Timeout    time.Duration
	RateLimit  rate.Limit
	UserAgent  string
	HTTPClient *http.Client
}

// DefaultOptions returns the default client options.
func DefaultOptions() Options {
	return Options{
		Timeout:   DefaultTimeout,
		RateLimit: DefaultRateLimit,
		UserAgent: DefaultUserAgent,
	}
}

// Client fetches and parses frequency pages.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// New creates a Client, filling unset options with defaults.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = DefaultRateLimit
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(opts.RateLimit, 1),
		userAgent:  opts.UserAgent,
	}
}

// FetchRows downloads url and extracts number,frequency rows from its tables.
func (c *Client) FetchRows(ctx context.Context, url string) ([][]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return ExtractRows(resp.Body)
}

// ExtractRows parses an HTML document and returns every table row whose first
// two cells hold integers, in document order. Other rows are ignored.
func ExtractRows(r io.Reader) ([][]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	var rows [][]string
	for tr := range eachElement(doc, atom.Tr) {
		cells := rowCells(tr)
		if len(cells) < 2 {
			continue
		}
		if !isInt(cells[0]) || !isInt(cells[1]) {
			continue
		}
		rows = append(rows, []string{cells[0], cells[1]})
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

// WriteCSV writes rows as number,frequency lines.
func WriteCSV(w io.Writer, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func eachElement(n *html.Node, a atom.Atom) func(yield func(*html.Node) bool) {
	return func(yield func(*html.Node) bool) {
		var walk func(*html.Node) bool
		walk = func(node *html.Node) bool {
			if node.Type == html.ElementNode && node.DataAtom == a {
				if !yield(node) {
					return false
				}
			}
			for child := node.FirstChild; child != nil; child = child.NextSibling {
				if !walk(child) {
					return false
				}
			}
			return true
		}
		walk(n)
	}
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for child := tr.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		if child.DataAtom != atom.Td && child.DataAtom != atom.Th {
			continue
		}
		cells = append(cells, cleanCell(textContent(child)))
	}
	return cells
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

// cleanCell trims whitespace and drops thousands separators.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	return strings.NewReplacer(",", "", " ", "").Replace(s)
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
