package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vanderheijden86/bwtree/pkg/loader"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// WriteMarkdown writes rows as a nested bullet list:
//
//	- **Bravo** `b`
//	  - **Delta** `b/d` (2 hidden)
//
// Descriptions follow their bullet, indented one level deeper. Closed
// branches note how many children they hide.
func WriteMarkdown(w io.Writer, title string, rows []tree.Row[string, loader.Entry]) error {
	bw := bufio.NewWriter(w)
	if title != "" {
		fmt.Fprintf(bw, "# %s\n\n", title)
	}
	for _, row := range rows {
		indent := strings.Repeat("  ", row.Depth)
		fmt.Fprintf(bw, "%s- **%s** `%s`", indent, escapeMarkdown(rowLabel(row)), row.Path)
		if row.HasChildren && !row.IsOpen {
			fmt.Fprintf(bw, " (%d hidden)", len(row.Node.Children()))
		}
		bw.WriteString("\n")

		desc := strings.TrimSpace(row.Node.Payload().Description)
		if desc == "" {
			continue
		}
		bw.WriteString("\n")
		for line := range strings.SplitSeq(desc, "\n") {
			if strings.TrimSpace(line) == "" {
				bw.WriteString("\n")
				continue
			}
			fmt.Fprintf(bw, "%s  %s\n", indent, line)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

var markdownEscaper = strings.NewReplacer(`*`, `\*`, `_`, `\_`, "`", "\\`")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
