package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/avelar/inkpad/internal/models"
)

const htmlStyle = `    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 800px; margin: 0 auto; padding: 2rem; line-height: 1.6; }
    h1, h2, h3 { color: #1a1a1a; }
    code { background: #f5f5f5; padding: 0.2em 0.4em; border-radius: 3px; }
    pre { background: #f5f5f5; padding: 1rem; border-radius: 6px; overflow-x: auto; }
    blockquote { border-left: 4px solid #e5e5e5; margin: 0; padding-left: 1rem; color: #666; }
    .todo-item { display: flex; align-items: center; gap: 0.5rem; }
`

func asHTML(doc models.Document, opts Options) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "  <title>%s</title>\n", html.EscapeString(doc.Title))
	b.WriteString("  <style>\n")
	b.WriteString(htmlStyle)
	b.WriteString("  </style>\n</head>\n<body>\n")

	if opts.IncludeMetadata {
		b.WriteString("  <div style=\"color: #666; font-size: 0.9em; margin-bottom: 2rem;\">\n")
		fmt.Fprintf(&b, "    <p>Created: %s</p>\n", doc.CreatedAt.Format("Jan 2, 2006"))
		fmt.Fprintf(&b, "    <p>Last updated: %s</p>\n", doc.UpdatedAt.Format("Jan 2, 2006"))
		b.WriteString("  </div>\n")
	}

	fmt.Fprintf(&b, "  <h1>%s</h1>\n", html.EscapeString(doc.Title))

	for _, block := range doc.Blocks {
		b.WriteString("  ")
		b.WriteString(blockToHTML(block))
		b.WriteString("\n")
	}

	b.WriteString("</body>\n</html>")
	return b.String()
}

// blockToHTML renders one block. All interpolated text goes through
// html.EscapeString — unescaped content would be an injection bug.
func blockToHTML(b models.Block) string {
	esc := html.EscapeString
	switch b.Type {
	case models.BlockHeading1:
		return "<h1>" + esc(b.Content) + "</h1>"
	case models.BlockHeading2:
		return "<h2>" + esc(b.Content) + "</h2>"
	case models.BlockHeading3:
		return "<h3>" + esc(b.Content) + "</h3>"
	case models.BlockBulletList:
		return "<ul><li>" + esc(b.Content) + "</li></ul>"
	case models.BlockNumberedList:
		return "<ol><li>" + esc(b.Content) + "</li></ol>"
	case models.BlockTodoList:
		checked := ""
		if b.Checked {
			checked = "checked "
		}
		return `<div class="todo-item"><input type="checkbox" ` + checked +
			`disabled> <span>` + esc(b.Content) + "</span></div>"
	case models.BlockQuote:
		return "<blockquote><p>" + esc(b.Content) + "</p></blockquote>"
	case models.BlockCode:
		return "<pre><code>" + esc(b.Content) + "</code></pre>"
	case models.BlockDivider:
		return "<hr>"
	case models.BlockImage:
		alt := b.Caption
		if alt == "" {
			alt = "Image"
		}
		return fmt.Sprintf(`<img src="%s" alt="%s" style="max-width: 100%%; height: auto;">`,
			esc(b.Content), esc(alt))
	default:
		return "<p>" + esc(b.Content) + "</p>"
	}
}
