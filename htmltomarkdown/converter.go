// Package htmltomarkdown renders page HTML as Markdown for storage and
// export alongside a digest.
package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pagedigest"
)

// Ensure Converter implements pagedigest.Converter at compile time.
var _ pagedigest.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
// Converter is safe for concurrent use.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown. Relative link and image
// targets are resolved against the origin of sourceURL.
func (c *Converter) Convert(html, sourceURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", pagedigest.Errorf(pagedigest.EINVALID, "empty HTML input")
	}

	var result string
	var err error
	if domain := origin(sourceURL); domain != "" {
		result, err = c.conv.ConvertString(html, converter.WithDomain(domain))
	} else {
		result, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}

// origin returns scheme://host of an absolute URL, or "".
func origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
