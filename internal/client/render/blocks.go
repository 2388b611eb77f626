package render

import "strings"

type blockKind int

const (
	blockProse blockKind = iota
	blockCode
)

type block struct {
	kind     blockKind
	text     string
	language string
}

// splitBlocks cuts Markdown into prose and fenced code. Fences are ``` or
// ~~~ (three or more), may be indented up to three spaces, and close with a
// fence of the same character at least as long. An unclosed fence runs to
// the end of the text.
func splitBlocks(src string) []block {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	var (
		out      []block
		buf      []string
		inCode   bool
		fence    string
		language string
	)
	flush := func(kind blockKind) {
		text := strings.Join(buf, "\n")
		buf = nil
		if kind == blockProse && strings.TrimSpace(text) == "" {
			return
		}
		out = append(out, block{kind: kind, text: text, language: language})
	}

	for _, line := range lines {
		if !inCode {
			if f, info, ok := openingFence(line); ok {
				flush(blockProse)
				inCode, fence = true, f
				language = firstWord(info)
				continue
			}
			buf = append(buf, line)
			continue
		}
		if closesFence(line, fence) {
			flush(blockCode)
			inCode, fence, language = false, "", ""
			continue
		}
		buf = append(buf, line)
	}

	if inCode {
		flush(blockCode)
	} else {
		flush(blockProse)
	}
	return out
}

func openingFence(line string) (fence, info string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return "", "", false
	}
	for _, ch := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == ch {
			n++
		}
		if n < 3 {
			continue
		}
		info = strings.TrimSpace(trimmed[n:])
		if ch == '`' && strings.Contains(info, "`") {
			return "", "", false
		}
		return trimmed[:n], info, true
	}
	return "", "", false
}

func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= len(fence) && strings.Trim(trimmed, fence[:1]) == ""
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return strings.ToLower(f[0])
	}
	return ""
}
