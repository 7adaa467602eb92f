package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		{name: "base name", path: "site/index.html", pattern: "*.html", want: true},
		{name: "base name miss", path: "site/index.htm", pattern: "*.html", want: false},
		{name: "exact path", path: "site/index.html", pattern: "site/index.html", want: true},
		{name: "single star stays in segment", path: "site/a/index.html", pattern: "site/*.html", want: false},
		{name: "trailing double star", path: "build/a/b.html", pattern: "build/**", want: true},
		{name: "trailing double star matches dir", path: "build", pattern: "build/**", want: true},
		{name: "leading double star", path: "a/b/partials", pattern: "**/partials", want: true},
		{name: "leading double star at root", path: "partials", pattern: "**/partials", want: true},
		{name: "middle double star", path: "site/x/y/page.html", pattern: "site/**/*.html", want: true},
		{name: "middle double star zero segments", path: "site/page.html", pattern: "site/**/*.html", want: true},
		{name: "middle double star miss", path: "docs/page.html", pattern: "site/**/*.html", want: false},
		{name: "bare double star", path: "anything/at/all", pattern: "**", want: true},
		{name: "trailing slash pattern", path: "build", pattern: "build/", want: true},
		{name: "invalid pattern", path: "a.html", pattern: "[", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, matchGlob(tt.path, tt.pattern))
		})
	}
}
