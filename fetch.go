package haml

import (
	"log/slog"
	"time"

	"github.com/gocolly/colly/v2"
)

// FetchDocument retrieves the markup of a remote page for conversion.
func FetchDocument(url string, timeout time.Duration, userAgent string) (string, error) {
	collector := colly.NewCollector()
	if userAgent != "" {
		collector.UserAgent = userAgent
	}
	if timeout > 0 {
		collector.SetRequestTimeout(timeout)
	}

	var body []byte
	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	slog.Debug("fetching document", "url", url)
	if err := collector.Visit(url); err != nil {
		return "", NewFetchError("failed to fetch "+url, err)
	}
	if len(body) == 0 {
		return "", NewFetchError("empty response body from "+url, nil)
	}
	return string(body), nil
}
