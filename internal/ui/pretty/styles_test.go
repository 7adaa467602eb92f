package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/markuplint/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "text", styles.Bold.Render("text"))
	assert.Equal(t, "text", styles.Error.Render("text"))
	assert.Equal(t, "^^", styles.Caret.Render("^^"))
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, &buf))
	assert.False(t, pretty.IsColorEnabled(pretty.ColorNever, os.Stdout))
	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, &buf), "buffers are never terminals")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, os.Stdout))
	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, os.Stdout))
}
