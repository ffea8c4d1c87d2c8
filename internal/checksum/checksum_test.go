package checksum

import (
	"testing"

	"github.com/avelar/inkpad/internal/models"
)

func TestSum(t *testing.T) {
	a := Sum([]byte("hello"))
	b := Sum([]byte("hello"))
	c := Sum([]byte("hello!"))
	if a != b {
		t.Error("identical input should produce identical digests")
	}
	if a == c {
		t.Error("different input should produce different digests")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(a))
	}
}

func TestDocument(t *testing.T) {
	doc := models.Document{
		ID:     "d1",
		Title:  "T",
		Blocks: []models.Block{{ID: "b1", Type: models.BlockParagraph, Content: "x"}},
	}
	a := Document(doc)
	b := Document(doc)
	if a != b {
		t.Error("digest should be deterministic")
	}

	doc.Blocks[0].Content = "y"
	if Document(doc) == a {
		t.Error("content change should change the digest")
	}
}
