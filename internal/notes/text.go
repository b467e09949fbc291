package notes

import (
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/MinesMe/ainotea/internal/storage"
)

// BlockTypeMarkdown marks a content block whose text is markdown. Such blocks
// are reduced to plain text before chunking so markup syntax does not end up
// in embeddings or search snippets.
const BlockTypeMarkdown = "markdown"

var markdownParser = goldmark.New()

// FullText assembles the indexable text of a note: the concatenation of its
// blocks' text in block order, one paragraph per block. Markdown blocks are
// flattened to plain text first.
func FullText(blocks []storage.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		text := block.Text
		if block.Type == BlockTypeMarkdown {
			text = markdownToPlainText(text)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}

// markdownToPlainText strips markdown formatting by walking the parsed AST
// and keeping only text content. Block-level nodes become paragraph breaks.
func markdownToPlainText(source string) string {
	content := []byte(source)
	doc := markdownParser.Parser().Parse(gtext.NewReader(content))

	var builder strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			builder.Write(node.Segment.Value(content))
			if node.SoftLineBreak() || node.HardLineBreak() {
				builder.WriteByte('\n')
			}
		case *ast.String:
			builder.Write(node.Value)
		case *ast.CodeBlock:
			writeLines(&builder, node.Lines(), content)
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			writeLines(&builder, node.Lines(), content)
			return ast.WalkSkipChildren, nil
		default:
			if n.Type() == ast.TypeBlock && builder.Len() > 0 {
				builder.WriteString("\n\n")
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(builder.String())
}

func writeLines(builder *strings.Builder, lines *gtext.Segments, content []byte) {
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		builder.Write(line.Value(content))
	}
}

// DeriveTitle builds a fallback note title from its text: the first line,
// capped at a few words of context.
func DeriveTitle(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "Untitled note"
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}

	const maxTitleRunes = 60
	runes := []rune(text)
	if len(runes) <= maxTitleRunes {
		return strings.TrimSpace(text)
	}

	truncated := runes[:maxTitleRunes]
	// Cut back to the last word boundary to avoid splitting a word.
	for i := len(truncated) - 1; i > 0; i-- {
		if unicode.IsSpace(truncated[i]) {
			truncated = truncated[:i]
			break
		}
	}
	return strings.TrimSpace(string(truncated)) + "…"
}
