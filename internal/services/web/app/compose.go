// Package app composes web modules into the root HTTP handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/frontpage/internal/platform/i18n"
	"github.com/louisbranch/frontpage/internal/services/web/module"
	"github.com/louisbranch/frontpage/internal/services/web/platform/httpx"
	"github.com/louisbranch/frontpage/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/frontpage/internal/services/web/platform/webctx"
	"github.com/louisbranch/frontpage/internal/services/web/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	// RootModules mount outside the locale segment, such as the root
	// redirect.
	RootModules []module.Module
	// LocalizedModules mount under "/{locale}/" and only see supported
	// locales.
	LocalizedModules []module.Module
	Locales          i18n.LocaleConfig
	// NotFound answers paths no module owns and unsupported locales.
	NotFound            http.Handler
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Compose builds a root HTTP handler from module groups.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	locales := input.Locales.Normalize()
	if err := locales.Validate(); err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	notFound := input.NotFound
	if notFound == nil {
		notFound = http.NotFoundHandler()
	}
	seen := make(map[string]string)

	for _, feature := range input.RootModules {
		if feature == nil {
			return nil, fmt.Errorf("root module is nil")
		}
		if err := mountRootModule(root, feature, seen); err != nil {
			return nil, err
		}
	}

	wrap := wrapLocalizedModule(locales, notFound, input.RequestSchemePolicy)
	for _, feature := range input.LocalizedModules {
		if feature == nil {
			return nil, fmt.Errorf("localized module is nil")
		}
		if err := mountLocalizedModule(root, feature, seen, wrap); err != nil {
			return nil, err
		}
	}

	root.Handle(routepath.BareLocalePattern, canonicalLocale(locales, notFound))
	root.Handle(routepath.Root, notFound)
	return root, nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	mount module.Mount,
	prefix string,
	seen map[string]string,
	wrap func(http.Handler) http.Handler,
) error {
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()

	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	root.Handle(prefix, handler)
	return nil
}

func mountRootModule(root *http.ServeMux, feature module.Module, seen map[string]string) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if isLocalizedPrefix(prefix) {
		return fmt.Errorf("module %q has localized prefix %q in root group", feature.ID(), prefix)
	}
	return mountModule(root, feature, mount, prefix, seen, nil)
}

func mountLocalizedModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if !isLocalizedPrefix(prefix) {
		return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.LocalePrefix, prefix)
	}
	return mountModule(root, feature, mount, prefix, seen, wrap)
}

func isLocalizedPrefix(prefix string) bool {
	return strings.HasPrefix(prefix, routepath.LocalePrefix)
}

func resolveMount(feature module.Module) (module.Mount, string, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if err := validatePrefix(mount.Prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, mount.Prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") && !strings.HasSuffix(prefix, "/{$}") {
		return fmt.Errorf("prefix must end with / or /{$}")
	}
	return nil
}

func wrapLocalizedModule(locales i18n.LocaleConfig, notFound http.Handler, policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return requireLocale(locales, notFound)(policy.RequireSameOrigin(next))
	}
}

// requireLocale admits only supported locales and stores the locale on the
// request context for rendering.
func requireLocale(locales i18n.LocaleConfig, notFound http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := r.PathValue(routepath.LocaleParam)
			if !locales.Contains(locale) {
				notFound.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(webctx.WithLocale(r.Context(), locale)))
		})
	}
}

// canonicalLocale sends "/fr" to "/fr/". It is path canonicalization, not a
// locale choice, so unsupported locales are not redirected.
func canonicalLocale(locales i18n.LocaleConfig, notFound http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := r.PathValue(routepath.LocaleParam)
		if !locales.Contains(locale) {
			notFound.ServeHTTP(w, r)
			return
		}
		target := routepath.Landing(locale)
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		httpx.WriteRedirect(w, r, target, http.StatusMovedPermanently)
	})
}
