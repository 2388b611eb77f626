// Package render turns conversations into terminal output: prose through
// glamour, fenced code through a Highlighter, and lipgloss for the chrome
// around messages and the conversation list.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

const (
	DefaultWidth     = 80
	DefaultCodeStyle = "monokai"

	// StyleAuto lets glamour pick a dark or light theme from the terminal.
	StyleAuto = "auto"
	// StyleNoTTY renders without escape sequences.
	StyleNoTTY = "notty"
)

type Options struct {
	Width int
	// Style is a glamour standard style name ("dark", "light", "notty",
	// ...) or StyleAuto.
	Style string
	// Profile is the colour capability of the output. The zero value is
	// termenv.TrueColor; use DetectProfile for the real terminal.
	Profile     termenv.Profile
	Highlighter Highlighter
}

type Renderer struct {
	width   int
	md      *glamour.TermRenderer
	hl      Highlighter
	profile termenv.Profile

	userLabel      lipgloss.Style
	assistantLabel lipgloss.Style
	codeFrame      lipgloss.Style
	langBadge      lipgloss.Style
	inactive       lipgloss.Style
	active         lipgloss.Style
}

func New(opts Options) (*Renderer, error) {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	profile := opts.Profile
	style := opts.Style
	if style == "" {
		style = StyleAuto
	}
	if profile == termenv.Ascii {
		style = StyleNoTTY
	}

	styleOpt := glamour.WithStandardStyle(style)
	if style == StyleAuto {
		styleOpt = glamour.WithAutoStyle()
	}
	md, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}

	hl := opts.Highlighter
	if hl == nil {
		hl = NewChromaHighlighter(DefaultCodeStyle, profile)
	}

	r := &Renderer{width: width, md: md, hl: hl, profile: profile}
	r.initStyles()
	return r, nil
}

func (r *Renderer) initStyles() {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(r.profile)

	r.userLabel = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	r.assistantLabel = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	r.codeFrame = renderer.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	r.langBadge = renderer.NewStyle().Faint(true).Italic(true)
	r.inactive = renderer.NewStyle().Faint(true)
	r.active = renderer.NewStyle().Bold(true)
}

// Markdown renders a message body. Prose goes through glamour; fenced blocks
// go through the highlighter with the fence's language tag.
func (r *Renderer) Markdown(content string) string {
	var parts []string
	for _, b := range splitBlocks(content) {
		switch b.kind {
		case blockCode:
			parts = append(parts, r.codeBlock(b))
		default:
			out, err := r.md.Render(b.text)
			if err != nil {
				out = b.text
			}
			parts = append(parts, strings.Trim(out, "\n"))
		}
	}
	return strings.Join(parts, "\n\n")
}

func (r *Renderer) codeBlock(b block) string {
	body := r.hl.Highlight(b.text, b.language)
	if b.language != "" {
		body = r.langBadge.Render(b.language) + "\n" + body
	}
	return r.codeFrame.Render(body)
}

// Message renders one turn with a role label. User text is shown as typed;
// assistant text is rendered as Markdown.
func (r *Renderer) Message(m models.Message) string {
	if m.Role == models.RoleAssistant {
		return r.assistantLabel.Render("Assistant") + "\n" + r.Markdown(m.Content)
	}
	return r.userLabel.Render("You") + "\n" + wrap(m.Content, r.width)
}

func (r *Renderer) Conversation(c models.Conversation) string {
	if len(c.Messages) == 0 {
		return r.inactive.Render("No messages yet. Type something to start.")
	}
	parts := make([]string, 0, len(c.Messages)+1)
	parts = append(parts, r.active.Render(c.Title))
	for _, m := range c.Messages {
		parts = append(parts, r.Message(m))
	}
	return strings.Join(parts, "\n\n")
}

// List renders the numbered conversation list used by "open <n>".
func (r *Renderer) List(convs []models.Conversation, activeID string) string {
	if len(convs) == 0 {
		return r.inactive.Render("No conversations yet. Use \"new\" to start one.")
	}
	titleWidth := r.width - 8
	if titleWidth < 10 {
		titleWidth = 10
	}

	var b strings.Builder
	for i, c := range convs {
		title := runewidth.Truncate(c.Title, titleWidth, "…")
		line := fmt.Sprintf("%3d. %s", i+1, title)
		if c.ID == activeID {
			b.WriteString(r.active.Render("> " + line))
		} else {
			b.WriteString(r.inactive.Render("  " + line))
		}
		if i < len(convs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// DetectProfile reports the colour capability of w, honouring NO_COLOR and
// CLICOLOR_FORCE.
func DetectProfile(w io.Writer) termenv.Profile {
	return termenv.NewOutput(w).EnvColorProfile()
}

func wrap(s string, width int) string {
	lines := strings.Split(lipgloss.NewStyle().Width(width).Render(s), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
