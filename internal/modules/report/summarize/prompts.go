package summarize

import (
	"fmt"
	"strings"
)

const chunkPromptTemplate = `Summarize the following spreadsheet rows as a bulleted list, one bullet per line.

%s`

const combinePromptTemplate = `Combine these partial summaries into one overall summary.

%s`

func buildChunkPrompt(rendered string) string {
	return fmt.Sprintf(chunkPromptTemplate, rendered)
}

// buildCombinePrompt embeds the partial summaries, concatenated in chunk
// order with no separator, into the combination template.
func buildCombinePrompt(partials []string) string {
	return fmt.Sprintf(combinePromptTemplate, strings.Join(partials, ""))
}

// renderRows produces a tab-separated textual rendering of the rows. The
// result is capped at maxChars runes so an oversized chunk cannot blow the
// model's input window; the second return reports whether truncation
// happened.
func renderRows(rows [][]string, maxChars int) (string, bool) {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	text := b.String()
	if maxChars <= 0 {
		return text, false
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text, false
	}
	return string(runes[:maxChars]) + "\n[truncated]", true
}
