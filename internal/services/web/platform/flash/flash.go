// Package flash persists one-time toast notices across a redirect.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/louisbranch/frontpage/internal/services/web/platform/requestmeta"
)

// CookieName holds pending notices between a POST and the next page.
const CookieName = "fp_flash"

// maxNotices bounds the cookie payload.
const maxNotices = 4

// Kind classifies notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice references a localized message to show once.
type Notice struct {
	Kind Kind   `json:"kind"`
	Key  string `json:"key"`
}

// Success builds a success notice for key.
func Success(key string) Notice {
	return Notice{Kind: KindSuccess, Key: key}
}

// Error builds an error notice for key.
func Error(key string) Notice {
	return Notice{Kind: KindError, Key: key}
}

// Write stores notices for the next page render. Invalid notices are dropped.
func Write(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, notices ...Notice) {
	if w == nil {
		return
	}
	valid := make([]Notice, 0, len(notices))
	for _, notice := range notices {
		if normalized, ok := normalize(notice); ok {
			valid = append(valid, normalized)
		}
	}
	if len(valid) == 0 {
		return
	}
	if len(valid) > maxNotices {
		valid = valid[len(valid)-maxNotices:]
	}
	payload, err := json.Marshal(valid)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear returns pending notices and expires the cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) []Notice {
	if r == nil {
		return nil
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	if w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   policy.IsHTTPS(r),
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
	return decode(cookie.Value)
}

func decode(raw string) []Notice {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	var notices []Notice
	if err := json.Unmarshal(decoded, &notices); err != nil {
		return nil
	}
	out := notices[:0]
	for _, notice := range notices {
		if normalized, ok := normalize(notice); ok {
			out = append(out, normalized)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalize(notice Notice) (Notice, bool) {
	notice.Key = strings.TrimSpace(notice.Key)
	if notice.Key == "" {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return notice, true
	default:
		return Notice{}, false
	}
}
