// Package branding holds product naming shared by pages and logs.
package branding

import "strings"

// AppName is the product name shown in titles and the navbar.
const AppName = "Lumen"

// ComposePageTitle appends the product name to a page title.
func ComposePageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return AppName
	}
	if title == AppName || strings.HasSuffix(title, " | "+AppName) {
		return title
	}
	return title + " | " + AppName
}
