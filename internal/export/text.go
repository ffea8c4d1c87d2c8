package export

import (
	"fmt"
	"strings"

	"github.com/avelar/inkpad/internal/models"
)

const dividerWidth = 50

func asText(doc models.Document, opts Options) string {
	var b strings.Builder

	b.WriteString(doc.Title + "\n")
	b.WriteString(strings.Repeat("=", titleWidth(doc.Title)) + "\n\n")

	if opts.IncludeMetadata {
		fmt.Fprintf(&b, "Created: %s\n", doc.CreatedAt.Format("Jan 2, 2006"))
		fmt.Fprintf(&b, "Updated: %s\n\n", doc.UpdatedAt.Format("Jan 2, 2006"))
	}

	for _, block := range doc.Blocks {
		b.WriteString(blockToText(block))
		b.WriteString("\n\n")
	}

	return strings.TrimSpace(b.String())
}

// titleWidth sizes the underline to the rune count, not the byte count.
func titleWidth(s string) int {
	n := len([]rune(s))
	if n == 0 {
		return 1
	}
	return n
}

func blockToText(b models.Block) string {
	switch b.Type {
	case models.BlockHeading1:
		return b.Content + "\n" + strings.Repeat("=", titleWidth(b.Content))
	case models.BlockHeading2:
		return b.Content + "\n" + strings.Repeat("-", titleWidth(b.Content))
	case models.BlockHeading3:
		return b.Content
	case models.BlockBulletList:
		return "• " + b.Content
	case models.BlockNumberedList:
		return "1. " + b.Content
	case models.BlockTodoList:
		if b.Checked {
			return "☑ " + b.Content
		}
		return "☐ " + b.Content
	case models.BlockQuote:
		return `"` + b.Content + `"`
	case models.BlockCode:
		return "CODE:\n" + b.Content
	case models.BlockDivider:
		return strings.Repeat("─", dividerWidth)
	case models.BlockImage:
		return "[Image: " + b.Content + "]"
	default:
		return b.Content
	}
}
