package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophchat/internal/client/router"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// commandNames feeds tab completion.
var commandNames = []string{
	"help", "login", "register", "list", "new", "open", "send", "show", "logout", "exit", "quit",
	"notes", "dismiss",
	"/login", "/register", "/chat",
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	route() router.Route
	status() string
	draft() string
	flush()

	Navigate(ctx context.Context, path string) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	List(ctx context.Context) error
	New(ctx context.Context) error
	Open(ctx context.Context, arg string) error
	Send(ctx context.Context, text string) error
	Show(ctx context.Context) error
	Logout(ctx context.Context) error
	Notifications(ctx context.Context) error
	Dismiss(ctx context.Context, arg string) error
}

// runREPL starts a read–eval–print loop over in.
//
// It reads a line, parses the first token as the command, and dispatches to
// methods on 'a'. The loop exits on EOF or when the user types "exit" or
// "quit". Ctrl-C clears the current line.
//
// Prompt & Commands
//
// The prompt shows the current screen (from a.status) and accepts:
//
//	Any screen:
//	  - help                   show available commands
//	  - /login, /register,
//	    /chat                  navigate (the guard may redirect)
//	  - notes                  list notifications that have not expired
//	  - dismiss <id>           remove notification id
//	  - exit | quit            leave the program
//
//	Login / register screens:
//	  - login                  authenticate with email and password
//	  - register               create an account
//
//	Chat screen:
//	  - list | l               list conversations
//	  - new                    start a conversation
//	  - open <n>               switch to conversation n from the list
//	  - send <text>            send a message (any other line does too)
//	  - show                   print the active conversation
//	  - logout                 end the session
//
// Errors returned by command handlers are not printed here; handlers report
// through notifications, which are flushed before every prompt.
func runREPL(ctx context.Context, a execIface, in Input) {
	for {
		a.flush()
		if ctx.Err() != nil {
			return
		}

		line, err := in.ReadLine(fmt.Sprintf("gophchat %s> ", a.status()), a.draft())
		if err != nil {
			if errors.Is(err, ErrAborted) {
				continue
			}
			if !errors.Is(err, io.EOF) {
				printlnFn("input error:", err)
			}
			printlnFn("Bye!")
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		in.Remember(line)

		cmd, rest := splitCommand(line)

		switch {
		case cmd == "exit" || cmd == "quit":
			printlnFn("Bye!")
			return

		case cmd == "help":
			printlnFn(helpText(a.route()))

		case cmd == "notes":
			_ = a.Notifications(ctx)

		case cmd == "dismiss":
			_ = a.Dismiss(ctx, rest)

		case strings.HasPrefix(cmd, "/"):
			_ = a.Navigate(ctx, cmd)

		case a.route() == router.RouteChat:
			dispatchChat(ctx, a, cmd, rest, line)

		default:
			dispatchAuth(ctx, a, cmd)
		}
	}
}

func dispatchAuth(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "login":
		_ = a.Login(ctx)
	case "register":
		_ = a.Register(ctx)
	case "list", "l", "new", "open", "send", "show", "logout":
		printlnFn("Please login first.")
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func dispatchChat(ctx context.Context, a execIface, cmd, rest, line string) {
	switch cmd {
	case "list", "l":
		_ = a.List(ctx)
	case "new":
		_ = a.New(ctx)
	case "open":
		_ = a.Open(ctx, rest)
	case "send":
		_ = a.Send(ctx, rest)
	case "show":
		_ = a.Show(ctx)
	case "logout":
		_ = a.Logout(ctx)
	case "login", "register":
		printlnFn("Already logged in. Use 'logout' first.")
	default:
		_ = a.Send(ctx, line)
	}
}

// splitCommand returns the lower-cased first word and the remainder with
// its original spacing.
func splitCommand(line string) (string, string) {
	trimmed := strings.TrimSpace(line)
	cmd, rest, _ := strings.Cut(trimmed, " ")
	return strings.ToLower(cmd), strings.TrimSpace(rest)
}

func helpText(r router.Route) string {
	if r == router.RouteChat {
		return "Available commands: (l)ist, new, open <n>, send <text>, show, notes, dismiss <id>, logout, exit\n" +
			"Any other line is sent as a message."
	}
	return "Available commands: login, register, notes, dismiss <id>, exit"
}
