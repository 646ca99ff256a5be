package parser

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// NewUTF8Reader wraps body so that any declared or sniffed encoding
// (meta charset, XML declaration, BOM, heuristics) is converted to UTF-8.
// UTF-8 input passes through unchanged.
func NewUTF8Reader(body io.Reader) (io.Reader, error) {
	return charset.NewReader(body, "")
}

// newDocument decodes body to UTF-8 and parses it with goquery.
func newDocument(body io.Reader) (*goquery.Document, error) {
	utf8Body, err := NewUTF8Reader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}
