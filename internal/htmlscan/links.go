package htmlscan

import (
	"fmt"
	"strings"

	"github.com/gocolly/colly"
)

// FirstZipLink visits pageURL and returns the href of the first anchor,
// in document order, whose target ends in ".zip". It returns an empty
// string when the page holds no such anchor.
func (f *Factory) FirstZipLink(pageURL string) (string, error) {
	c := f.New()

	var link string
	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		if link != "" {
			return
		}
		if href := e.Attr("href"); strings.HasSuffix(href, ".zip") {
			link = href
		}
	})

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("failed to scan listing page %s: %w", pageURL, err)
	}

	return link, nil
}
