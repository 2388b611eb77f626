package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// Highlighter colours one fenced code block. language is the fence's tag and
// may be empty.
type Highlighter interface {
	Highlight(code, language string) string
}

type ChromaHighlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewChromaHighlighter picks the chroma formatter matching the terminal
// profile; an Ascii profile yields uncoloured output.
func NewChromaHighlighter(styleName string, profile termenv.Profile) *ChromaHighlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	name := "terminal256"
	switch profile {
	case termenv.TrueColor:
		name = "terminal16m"
	case termenv.ANSI:
		name = "terminal16"
	case termenv.Ascii:
		name = "noop"
	}
	formatter := formatters.Get(name)
	if formatter == nil {
		formatter = formatters.Fallback
	}

	return &ChromaHighlighter{style: style, formatter: formatter}
}

func (h *ChromaHighlighter) Highlight(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}
