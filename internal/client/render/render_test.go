package render

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

type hlCall struct {
	code, language string
}

type recordingHighlighter struct {
	calls []hlCall
}

func (r *recordingHighlighter) Highlight(code, language string) string {
	r.calls = append(r.calls, hlCall{code, language})
	return "<<" + code + ">>"
}

func newTestRenderer(t *testing.T, hl Highlighter) *Renderer {
	t.Helper()
	r, err := New(Options{Width: 60, Style: StyleNoTTY, Profile: termenv.Ascii, Highlighter: hl})
	require.NoError(t, err)
	return r
}

func TestMarkdown_FenceGoesToHighlighter(t *testing.T) {
	hl := &recordingHighlighter{}
	r := newTestRenderer(t, hl)

	out := r.Markdown("Here:\n```python\nprint('x')\n```\nand `inline` code")

	require.Equal(t, []hlCall{{"print('x')", "python"}}, hl.calls)
	assert.Contains(t, out, "<<print('x')>>")
	assert.Contains(t, out, "python")
	assert.Contains(t, out, "inline")
	assert.NotContains(t, out, "<<inline>>")
}

func TestMarkdown_ProseOnly_NoHighlighter(t *testing.T) {
	hl := &recordingHighlighter{}
	r := newTestRenderer(t, hl)

	out := r.Markdown("# Title\n\nSome *emphasis* and `x := 1`.")
	assert.Empty(t, hl.calls)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "emphasis")
}

func TestMessage_RolesAreDistinguished(t *testing.T) {
	r := newTestRenderer(t, &recordingHighlighter{})

	user := r.Message(models.Message{Role: models.RoleUser, Content: "**not markdown**"})
	bot := r.Message(models.Message{Role: models.RoleAssistant, Content: "**bold**"})

	assert.True(t, strings.HasPrefix(user, "You"))
	assert.Contains(t, user, "**not markdown**")
	assert.True(t, strings.HasPrefix(bot, "Assistant"))
	assert.Contains(t, bot, "bold")
	assert.NotEqual(t, user, bot)
}

func TestConversation_Empty(t *testing.T) {
	r := newTestRenderer(t, nil)
	assert.Contains(t, r.Conversation(models.Conversation{ID: "a", Title: "T"}), "No messages yet")
}

func TestList_MarksActiveAndTruncates(t *testing.T) {
	r := newTestRenderer(t, nil)
	long := strings.Repeat("長", 80)
	out := r.List([]models.Conversation{
		{ID: "a", Title: "First"},
		{ID: "b", Title: long},
	}, "a")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], ">   1. First")
	assert.Contains(t, lines[1], "…")
	assert.NotContains(t, lines[1], long)
}

func TestList_Empty(t *testing.T) {
	r := newTestRenderer(t, nil)
	assert.Contains(t, r.List(nil, ""), "No conversations yet")
}

func TestChromaHighlighter(t *testing.T) {
	plain := NewChromaHighlighter("monokai", termenv.Ascii)
	assert.Equal(t, "x = 1", plain.Highlight("x = 1\n", "python"))

	colored := NewChromaHighlighter("no-such-style", termenv.ANSI256)
	out := colored.Highlight("def f():\n    return 1", "python")
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "return")

	// Unknown language falls back without failing.
	assert.Contains(t, colored.Highlight("whatever", "klingon"), "whatever")
}
