package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/avelar/inkpad/internal/models"
)

func asMarkdown(doc models.Document, opts Options) string {
	var b strings.Builder

	if opts.IncludeMetadata {
		b.WriteString("---\n")
		fmt.Fprintf(&b, "title: %s\n", doc.Title)
		fmt.Fprintf(&b, "created: %s\n", doc.CreatedAt.Format(time.RFC3339))
		fmt.Fprintf(&b, "updated: %s\n", doc.UpdatedAt.Format(time.RFC3339))
		fmt.Fprintf(&b, "id: %s\n", doc.ID)
		b.WriteString("---\n\n")
	}

	fmt.Fprintf(&b, "# %s\n\n", doc.Title)

	for _, block := range doc.Blocks {
		b.WriteString(blockToMarkdown(block))
		b.WriteString("\n\n")
	}

	return strings.TrimSpace(b.String())
}

func blockToMarkdown(b models.Block) string {
	switch b.Type {
	case models.BlockHeading1:
		return "# " + b.Content
	case models.BlockHeading2:
		return "## " + b.Content
	case models.BlockHeading3:
		return "### " + b.Content
	case models.BlockBulletList:
		return "- " + b.Content
	case models.BlockNumberedList:
		// Every item renders as "1." — markdown renderers renumber, and the
		// source behavior is pinned by tests, so no running counter here.
		return "1. " + b.Content
	case models.BlockTodoList:
		if b.Checked {
			return "- [x] " + b.Content
		}
		return "- [ ] " + b.Content
	case models.BlockQuote:
		return "> " + b.Content
	case models.BlockCode:
		return "```" + b.Language + "\n" + b.Content + "\n```"
	case models.BlockDivider:
		return "---"
	case models.BlockImage:
		alt := b.Caption
		if alt == "" {
			alt = "Image"
		}
		return fmt.Sprintf("![%s](%s)", alt, b.Content)
	default:
		return b.Content
	}
}
