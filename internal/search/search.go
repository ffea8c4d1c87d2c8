// Package search implements the substring scan used by the command palette
// and the sidebar filter.
package search

import (
	"strings"

	"github.com/avelar/inkpad/internal/models"
)

// MatchType says which part of a document matched the query.
type MatchType string

const (
	MatchTitle   MatchType = "title"
	MatchContent MatchType = "content"
)

// Result is one search hit. For content matches BlockID and Snippet point
// at the first matching block.
type Result struct {
	DocumentID string    `json:"documentId"`
	Title      string    `json:"title"`
	MatchType  MatchType `json:"matchType"`
	BlockID    string    `json:"blockId,omitempty"`
	Snippet    string    `json:"snippet,omitempty"`
}

const snippetLen = 120

// Documents returns the documents whose title or block content contains the
// query as a case-insensitive substring, in the order given. An empty or
// whitespace-only query matches nothing.
func Documents(docs []models.Document, query string) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []Result
	for _, doc := range docs {
		if strings.Contains(strings.ToLower(doc.Title), q) {
			out = append(out, Result{
				DocumentID: doc.ID,
				Title:      doc.Title,
				MatchType:  MatchTitle,
			})
			continue
		}
		for _, b := range doc.Blocks {
			if strings.Contains(strings.ToLower(b.Content), q) {
				out = append(out, Result{
					DocumentID: doc.ID,
					Title:      doc.Title,
					MatchType:  MatchContent,
					BlockID:    b.ID,
					Snippet:    snippet(b.Content),
				})
				break
			}
		}
	}
	return out
}

func snippet(content string) string {
	if len(content) <= snippetLen {
		return content
	}
	return content[:snippetLen] + "..."
}
