package mcpserver

// DocumentFormatContract describes the canonical block JSON format that
// LLM consumers should follow when creating documents.
const DocumentFormatContract = `# Inkpad Document Format Contract

Every Inkpad document is an ordered list of typed blocks. Tools that accept
a ` + "`" + `blocks` + "`" + ` argument expect a JSON array of block objects.

## Block object

` + "```" + `json
{
  "type": "paragraph",        // REQUIRED - one of the types below
  "content": "Plain text",    // text payload; URL for image blocks
  "checked": false,           // todoList only
  "language": "go",           // code only
  "caption": "Alt text"       // image only
}
` + "```" + `

## Block types

| type          | content meaning                  |
|---------------|----------------------------------|
| paragraph     | plain text                       |
| heading1      | section heading, largest         |
| heading2      | section heading                  |
| heading3      | section heading, smallest        |
| bulletList    | one bullet item per block        |
| numberedList  | one numbered item per block      |
| todoList      | checkbox item; see ` + "`" + `checked` + "`" + `   |
| quote         | quoted text                      |
| code          | source code; see ` + "`" + `language` + "`" + `   |
| divider       | content ignored                  |
| image         | image URL; see ` + "`" + `caption` + "`" + `      |

## Rules

1. **Content is plain text.** No Markdown or HTML inside ` + "`" + `content` + "`" + ` —
   structure comes from the block type, never from inline markup.
2. **One list item per block.** A three-item bullet list is three
   consecutive ` + "`" + `bulletList` + "`" + ` blocks.
3. **Ids are server-assigned.** Never send an ` + "`" + `id` + "`" + ` field; the server
   mints one for every block.
4. **Image content is a URL.** Upload files first via the ` + "`" + `upload_asset` + "`" + `
   tool and use the returned ` + "`" + `/attachments/...` + "`" + ` URL.
5. **Supported upload formats:** png, jpg, jpeg, gif, webp, svg, pdf.

## Example

` + "```" + `json
[
  {"type": "heading1", "content": "Weekly standup"},
  {"type": "paragraph", "content": "Attendees: Alice, Bob."},
  {"type": "todoList", "content": "Review the design doc", "checked": false},
  {"type": "code", "content": "fmt.Println(\"hi\")", "language": "go"},
  {"type": "image", "content": "/attachments/whiteboard.jpg", "caption": "Whiteboard photo"}
]
` + "```" + `
`
