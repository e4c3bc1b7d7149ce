// Package toast collects transient notices raised while a request is handled.
package toast

import (
	"context"
	"net/http"
	"sync"

	"github.com/louisbranch/frontpage/internal/services/web/platform/flash"
	"github.com/louisbranch/frontpage/internal/services/web/platform/httpx"
	"github.com/louisbranch/frontpage/internal/services/web/platform/requestmeta"
)

// Collector accumulates notices for one request. It is safe for concurrent use
// so parallel queries of one page may report into it.
type Collector struct {
	mu      sync.Mutex
	notices []flash.Notice
}

type collectorKey struct{}

// WithCollector attaches c to ctx.
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

// FromContext returns the request collector, or nil.
func FromContext(ctx context.Context) *Collector {
	if ctx == nil {
		return nil
	}
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

// Middleware installs a fresh collector on every request.
func Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithCollector(r.Context(), &Collector{})))
		})
	}
}

// Add records notice on the collector carried by ctx. It reports false when
// ctx carries none.
func Add(ctx context.Context, notice flash.Notice) bool {
	c := FromContext(ctx)
	if c == nil {
		return false
	}
	c.mu.Lock()
	c.notices = append(c.notices, notice)
	c.mu.Unlock()
	return true
}

// Drain returns and clears the notices collected on ctx.
func Drain(ctx context.Context) []flash.Notice {
	c := FromContext(ctx)
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notices
	c.notices = nil
	return out
}

// RedirectAfterPost carries collected notices across a See Other redirect.
func RedirectAfterPost(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, location string) {
	if notices := Drain(r.Context()); len(notices) > 0 {
		flash.Write(w, r, policy, notices...)
	}
	httpx.WriteRedirect(w, r, location, http.StatusSeeOther)
}
