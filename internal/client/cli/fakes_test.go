package cli

import (
	"io"
	"strings"
	"sync"
)

// scriptInput replays a fixed list of answers, then reports EOF.
type scriptInput struct {
	mu      sync.Mutex
	answers []string
	prompts []string
	drafts  []string
	history []string
	closed  bool
}

func newScript(answers ...string) *scriptInput {
	return &scriptInput{answers: answers}
}

func (s *scriptInput) next(prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if a == "^C" {
		return "", ErrAborted
	}
	return a, nil
}

func (s *scriptInput) ReadLine(prompt, draft string) (string, error) {
	s.mu.Lock()
	s.drafts = append(s.drafts, draft)
	s.mu.Unlock()
	return s.next(prompt)
}

func (s *scriptInput) ReadPassword(prompt string) (string, error) {
	return s.next(prompt)
}

func (s *scriptInput) Remember(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, line)
}

func (s *scriptInput) Close() error {
	s.closed = true
	return nil
}

func (s *scriptInput) lastDraft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.drafts) - 1; i >= 0; i-- {
		if s.drafts[i] != "" {
			return s.drafts[i]
		}
	}
	return ""
}

func capturePrintln(t interface{ Cleanup(func()) }) *strings.Builder {
	var b strings.Builder
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = toString(a)
		}
		b.WriteString(strings.Join(parts, " ") + "\n")
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &b
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	default:
		return ""
	}
}
