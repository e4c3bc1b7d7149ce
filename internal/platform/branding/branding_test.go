package branding

import "testing"

func TestAppName(t *testing.T) {
	if AppName != "Lumen" {
		t.Fatalf("AppName = %q, want %q", AppName, "Lumen")
	}
}

func TestComposePageTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "empty", title: "  ", want: AppName},
		{name: "adds suffix", title: "Pricing", want: "Pricing | " + AppName},
		{name: "keeps suffix", title: "Pricing | " + AppName, want: "Pricing | " + AppName},
		{name: "bare name", title: AppName, want: AppName},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComposePageTitle(tc.title); got != tc.want {
				t.Fatalf("ComposePageTitle(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}
