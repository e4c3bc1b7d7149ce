// Package webctx carries per-request web facts through context.
package webctx

import "context"

type localeKey struct{}

// WithLocale records the locale segment the request was routed under.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// Locale returns the routed locale, or "" outside a localized route.
func Locale(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	locale, _ := ctx.Value(localeKey{}).(string)
	return locale
}
