package editor

import (
	"regexp"
	"strings"

	"github.com/avelar/inkpad/internal/models"
)

var numberedPrefixRe = regexp.MustCompile(`^\d+\. `)

// AutoConvert applies markdown typing shortcuts to a content change.
// If newContent starts with a recognized prefix and the block is not already
// that kind, the block is reclassified in place (same id) and the prefix is
// stripped. Otherwise the content is replaced verbatim. At most one
// conversion applies per call; checks run in a fixed order and the first
// match wins.
func AutoConvert(block models.Block, newContent string) models.Block {
	out := block.Clone()

	convert := func(typ models.BlockType, stripped string) models.Block {
		out.Type = typ
		out.Content = stripped
		return out
	}

	switch {
	case strings.HasPrefix(newContent, "# ") && block.Type != models.BlockHeading1:
		return convert(models.BlockHeading1, newContent[2:])
	case strings.HasPrefix(newContent, "## ") && block.Type != models.BlockHeading2:
		return convert(models.BlockHeading2, newContent[3:])
	case strings.HasPrefix(newContent, "### ") && block.Type != models.BlockHeading3:
		return convert(models.BlockHeading3, newContent[4:])
	case strings.HasPrefix(newContent, "- ") && block.Type != models.BlockBulletList:
		return convert(models.BlockBulletList, newContent[2:])
	case strings.HasPrefix(newContent, "> ") && block.Type != models.BlockQuote:
		return convert(models.BlockQuote, newContent[2:])
	case strings.HasPrefix(newContent, "```") && block.Type != models.BlockCode:
		return convert(models.BlockCode, newContent[3:])
	}

	if m := numberedPrefixRe.FindString(newContent); m != "" && block.Type != models.BlockNumberedList {
		return convert(models.BlockNumberedList, newContent[len(m):])
	}

	out.Content = newContent
	return out
}
