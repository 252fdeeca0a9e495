// Package htmlscan wraps the colly dependency so listing pages are
// scanned with the same cookie jar and user agent as plain downloads.
package htmlscan

import (
	"net/http"
	"net/http/cookiejar"

	"github.com/gocolly/colly"
	"github.com/gocolly/colly/debug"

	httplocal "github.com/BF667/bfrvc/internal/http"
)

// Factory builds collectors sharing the application's HTTP identity.
type Factory struct {
	jar          *cookiejar.Jar
	roundTripper http.RoundTripper
	userAgent    string
	debugger     debug.Debugger
}

// SetCookieJar shares a cookie jar with the collectors.
func SetCookieJar(jar *cookiejar.Jar) func(f *Factory) {
	return func(f *Factory) {
		f.jar = jar
	}
}

// SetUserAgent overrides the collector user agent.
func SetUserAgent(userAgent string) func(f *Factory) {
	return func(f *Factory) {
		f.userAgent = userAgent
	}
}

// SetTransport overrides the collector transport.
func SetTransport(rt http.RoundTripper) func(f *Factory) {
	return func(f *Factory) {
		f.roundTripper = rt
	}
}

// SetDebugger attaches a colly debugger to the collectors.
func SetDebugger(d debug.Debugger) func(f *Factory) {
	return func(f *Factory) {
		f.debugger = d
	}
}

// NewFactory creates a Factory and configures it with a set of config functions.
func NewFactory(conf ...func(f *Factory)) *Factory {
	f := &Factory{
		userAgent: httplocal.UserAgent,
	}
	for _, fn := range conf {
		fn(f)
	}
	return f
}

// New returns a collector configured with the factory settings.
func (f *Factory) New() *colly.Collector {
	c := colly.NewCollector()
	if f.debugger != nil {
		c.SetDebugger(f.debugger)
	}
	if len(f.userAgent) > 0 {
		c.UserAgent = f.userAgent
	}
	if f.jar != nil {
		c.SetCookieJar(f.jar)
	}
	if f.roundTripper != nil {
		c.WithTransport(f.roundTripper)
	}
	return c
}
