package style

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/opentui/opentui-go/color"
	"github.com/opentui/opentui-go/text"
	"github.com/opentui/opentui-go/wcwidth"
)

// Span is one tokenized run of source text carrying a capture name for
// Table.Lookup. Any tokenizer that produces these satisfies Highlighter;
// chroma is the concrete one wired in here, mapping its token categories
// to capture names the style table can resolve into display styles.
type Span struct {
	Text    string
	Capture string
}

// Highlighter tokenizes code into capture-named spans.
type Highlighter interface {
	Highlight(code, lang string) []Span
}

type chromaHighlighter struct{}

// NewChromaHighlighter returns a Highlighter backed by chroma/v2's lexer
// registry. Unknown languages fall back to chroma's plain-text lexer.
func NewChromaHighlighter() Highlighter {
	return &chromaHighlighter{}
}

func (h *chromaHighlighter) Highlight(code, lang string) []Span {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return []Span{{Text: code, Capture: "default"}}
	}

	var spans []Span
	for _, token := range iterator.Tokens() {
		spans = append(spans, Span{Text: token.Value, Capture: captureForTokenType(token.Type)})
	}
	return spans
}

func captureForTokenType(t chroma.TokenType) string {
	switch t.SubCategory() {
	case chroma.LiteralString:
		return "string"
	case chroma.LiteralNumber:
		return "number"
	}
	switch t.Category() {
	case chroma.Keyword:
		return "keyword"
	case chroma.Name:
		return "variable"
	case chroma.Comment:
		return "comment"
	case chroma.Operator:
		return "operator"
	case chroma.Punctuation:
		return "punctuation"
	default:
		return "default"
	}
}

// SeedFromChromaStyle registers a style entry for each capture name this
// package's chroma highlighter produces, sourced from a named chroma
// style (e.g. "monokai"); unknown names fall back to chroma's own
// fallback style.
func SeedFromChromaStyle(table *Table, styleName string) {
	s := chromastyles.Get(styleName)
	if s == nil {
		s = chromastyles.Fallback
	}
	for _, capture := range []string{"keyword", "variable", "string", "number", "comment", "operator", "punctuation"} {
		entry := s.Get(tokenTypeForCapture(capture))
		table.Register(capture, styleFromChromaEntry(entry))
	}
}

func tokenTypeForCapture(name string) chroma.TokenType {
	switch name {
	case "keyword":
		return chroma.Keyword
	case "variable":
		return chroma.Name
	case "string":
		return chroma.LiteralString
	case "number":
		return chroma.LiteralNumber
	case "comment":
		return chroma.Comment
	case "operator":
		return chroma.Operator
	case "punctuation":
		return chroma.Punctuation
	default:
		return chroma.Text
	}
}

func styleFromChromaEntry(e chroma.StyleEntry) color.Style {
	out := color.Style{}
	if e.Colour.IsSet() {
		out.Fg = color.New(e.Colour.Red(), e.Colour.Green(), e.Colour.Blue())
	}
	if e.Background.IsSet() {
		out.Bg = color.New(e.Background.Red(), e.Background.Green(), e.Background.Blue())
	}
	if e.Bold == chroma.Yes {
		out.Attrs |= color.AttrBold
	}
	if e.Italic == chroma.Yes {
		out.Attrs |= color.AttrItalic
	}
	if e.Underline == chroma.Yes {
		out.Attrs |= color.AttrUnderline
	}
	return out
}

// ApplyHighlights tokenizes code (assumed to be the full content of
// logical line row, no embedded newlines) and layers the resulting
// capture styles onto buf as highlight overlays.
func ApplyHighlights(buf *text.Buffer, row int, code string, h Highlighter, lang string, table *Table, eastAsian wcwidth.EastAsianMode) {
	col := 0
	for _, sp := range h.Highlight(code, lang) {
		id, _ := table.Lookup(sp.Capture)
		width := wcwidth.CalculateTextWidth([]byte(sp.Text), 8, true, eastAsian)
		if width > 0 {
			buf.AddHighlight(row, text.Highlight{StartCol: col, EndCol: col + width, StyleID: id, Priority: 1})
		}
		col += width
	}
}
