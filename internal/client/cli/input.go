package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/dmitrijs2005/gophchat/internal/common"
)

// ErrAborted is returned when the user cancels a prompt with Ctrl-C.
var ErrAborted = errors.New("prompt aborted")

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// Input is where the REPL reads from.
type Input interface {
	// ReadLine shows prompt and returns one line. draft, when non-empty, is
	// offered as pre-filled editable text.
	ReadLine(prompt, draft string) (string, error)
	ReadPassword(prompt string) (string, error)
	// Remember adds a submitted line to the history, where supported.
	Remember(line string)
	Close() error
}

// NewInput uses liner with history and line editing when stdin is a
// terminal, and a plain line reader otherwise.
func NewInput(stdin *os.File, w io.Writer, commands []string) Input {
	if term.IsTerminal(int(stdin.Fd())) {
		return newLinerInput(commands)
	}
	return NewPlainInput(bufio.NewReader(stdin), w, -1)
}

type linerInput struct {
	state *liner.State
}

func newLinerInput(commands []string) *linerInput {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	st.SetMultiLineMode(true)
	st.SetCompleter(func(line string) []string {
		var out []string
		for _, c := range commands {
			if strings.HasPrefix(c, strings.ToLower(line)) {
				out = append(out, c)
			}
		}
		return out
	})
	return &linerInput{state: st}
}

func (l *linerInput) ReadLine(prompt, draft string) (string, error) {
	var (
		line string
		err  error
	)
	if draft != "" {
		line, err = l.state.PromptWithSuggestion(prompt, draft, -1)
	} else {
		line, err = l.state.Prompt(prompt)
	}
	return line, mapLinerErr(err)
}

func (l *linerInput) ReadPassword(prompt string) (string, error) {
	pw, err := l.state.PasswordPrompt(prompt)
	return pw, mapLinerErr(err)
}

func (l *linerInput) Remember(line string) {
	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}
}

func (l *linerInput) Close() error {
	return l.state.Close()
}

func mapLinerErr(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) {
		return ErrAborted
	}
	return err
}

// PlainInput reads lines from any reader. Passwords are read without echo
// when fd is a terminal and as plain lines otherwise.
type PlainInput struct {
	reader *bufio.Reader
	w      io.Writer
	fd     int
}

// NewPlainInput builds a PlainInput; pass fd < 0 when reader is not a
// terminal.
func NewPlainInput(reader *bufio.Reader, w io.Writer, fd int) *PlainInput {
	return &PlainInput{reader: reader, w: w, fd: fd}
}

func (p *PlainInput) ReadLine(prompt, draft string) (string, error) {
	if draft != "" {
		prompt = fmt.Sprintf("%s[draft: %s] ", prompt, draft)
	}
	return GetSimpleText(p.reader, prompt, p.w)
}

func (p *PlainInput) ReadPassword(prompt string) (string, error) {
	if p.fd >= 0 && term.IsTerminal(p.fd) {
		pw, err := GetPassword(prompt, p.fd, p.w)
		defer common.WipeByteArray(pw)
		return string(pw), err
	}
	return GetSimpleText(p.reader, prompt, p.w)
}

func (p *PlainInput) Remember(string) {}

func (p *PlainInput) Close() error { return nil }

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password from the
// terminal fd without echo. A newline is printed after the read to keep the
// UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(prompt string, fd int, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
