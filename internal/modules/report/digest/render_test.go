package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSummaryHTML(t *testing.T) {
	t.Run("bullet list becomes an html list", func(t *testing.T) {
		html := renderSummaryHTML("- revenue up\n- costs flat")
		assert.Contains(t, html, "<ul>")
		assert.Contains(t, html, "<li>revenue up</li>")
	})

	t.Run("plain text survives", func(t *testing.T) {
		html := renderSummaryHTML("nothing remarkable this month")
		assert.Contains(t, html, "nothing remarkable this month")
	})
}
