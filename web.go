package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// isWebURL reports whether the input is an HTTP or HTTPS URL.
func isWebURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// WebDocument is a fetched page reduced to tokenizable markdown.
type WebDocument struct {
	URL      string
	Title    string
	Markdown string
}

// fetchWebDocument downloads an HTML page and converts it to markdown,
// which is what actually gets tokenized. Markup noise would otherwise
// inflate the count well past what a model consumer would send.
func fetchWebDocument(rawURL string) (*WebDocument, error) {
	res, err := http.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("fetching %s: status %d", rawURL, res.StatusCode)
	}
	contentType := res.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("unsupported content type %q for %s", contentType, rawURL)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", rawURL, err)
	}

	title := rawURL
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body))); err == nil {
		if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
			title = t
		}
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(string(body))
	if err != nil {
		return nil, fmt.Errorf("converting %s to markdown: %w", rawURL, err)
	}

	return &WebDocument{URL: rawURL, Title: title, Markdown: markdown}, nil
}
