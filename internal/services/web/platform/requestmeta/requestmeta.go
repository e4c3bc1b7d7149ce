// Package requestmeta resolves scheme and origin facts about a request.
package requestmeta

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls which request signals decide the scheme.
// X-Forwarded-Proto is ignored unless TrustForwardedProto is set.
type SchemePolicy struct {
	TrustForwardedProto bool `env:"FRONTPAGE_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// Scheme returns "https" or "http" for r.
func (p SchemePolicy) Scheme(r *http.Request) string {
	if r == nil {
		return ""
	}
	if p.TrustForwardedProto {
		switch forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded {
		case "http", "https":
			return forwarded
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// IsHTTPS reports whether r should be treated as HTTPS.
func (p SchemePolicy) IsHTTPS(r *http.Request) bool {
	return p.Scheme(r) == "https"
}

// HasSameOriginProof reports whether Origin, or Referer when Origin is
// absent, names the same scheme, host, and port as r.
func (p SchemePolicy) HasSameOriginProof(r *http.Request) bool {
	if r == nil {
		return false
	}
	scheme := p.Scheme(r)
	host, port := splitHost(r.Host, scheme)
	if host == "" {
		return false
	}
	proof := strings.TrimSpace(r.Header.Get("Origin"))
	if proof == "" {
		proof = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if proof == "" {
		return false
	}
	parsed, err := url.Parse(proof)
	if err != nil {
		return false
	}
	proofScheme := strings.ToLower(parsed.Scheme)
	if proofScheme != scheme {
		return false
	}
	proofHost, proofPort := splitHost(parsed.Host, proofScheme)
	return proofHost == host && proofPort == port
}

// RequireSameOrigin rejects unsafe-method requests that cannot prove they
// came from this site.
func (p SchemePolicy) RequireSameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			if !p.HasSameOriginProof(r) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func splitHost(raw, scheme string) (string, string) {
	raw = strings.TrimSpace(raw)
	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		host, port = raw, ""
	}
	if port == "" {
		switch scheme {
		case "https":
			port = "443"
		case "http":
			port = "80"
		}
	}
	return strings.ToLower(strings.Trim(host, "[]")), port
}
