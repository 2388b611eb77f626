package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/dmitrijs2005/gophchat/internal/client/api"
	"github.com/dmitrijs2005/gophchat/internal/client/chat"
	"github.com/dmitrijs2005/gophchat/internal/client/config"
	"github.com/dmitrijs2005/gophchat/internal/client/notify"
	"github.com/dmitrijs2005/gophchat/internal/client/render"
	"github.com/dmitrijs2005/gophchat/internal/client/router"
	"github.com/dmitrijs2005/gophchat/internal/client/services"
	"github.com/dmitrijs2005/gophchat/internal/client/session"
	"github.com/dmitrijs2005/gophchat/internal/client/storage"
	"github.com/dmitrijs2005/gophchat/internal/filex"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	store    *session.Store
	nav      *router.Navigator
	auth     services.AuthService
	chat     *chat.Controller
	notes    *notify.Center
	renderer *render.Renderer
	in       Input
	out      io.Writer
	spin     bool
	width    int

	closers []func() error
}

// NewApp wires the client for an interactive terminal session.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, closeLog, err := openLogger(c)
	if err != nil {
		return nil, err
	}

	path, err := filex.ExpandHome(c.DatabasePath)
	if err != nil {
		closeLog()
		return nil, err
	}
	db, err := storage.InitDatabase(ctx, path)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	width := c.RenderWidth
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if width == 0 && isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	a, err := newApp(ctx, appDeps{
		config:  c,
		log:     log,
		db:      db,
		in:      NewInput(os.Stdin, os.Stdout, commandNames),
		out:     os.Stdout,
		profile: render.DetectProfile(os.Stdout),
		width:   width,
		spin:    isTTY,
	})
	if err != nil {
		_ = db.Close()
		closeLog()
		return nil, err
	}
	a.closers = append(a.closers, func() error { closeLog(); return nil })
	return a, nil
}

type appDeps struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	in        Input
	out       io.Writer
	profile   termenv.Profile
	width     int
	spin      bool
	transport api.Options
}

func newApp(ctx context.Context, d appDeps) (*App, error) {
	c := d.config
	log := d.log
	if log == nil {
		log = logging.Nop()
	}

	store := session.NewStore(d.db, log)
	if _, err := store.Restore(ctx); err != nil {
		log.Warn(ctx, "cannot restore session, starting logged out", "error", err)
	}

	opts := d.transport
	opts.BaseURL = c.ServerBaseURL
	opts.Prefix = c.APIPrefix
	opts.MessageRoute = api.MessageRoute(c.MessageRoute)
	opts.Timeout = c.RequestTimeout
	opts.RequestsPerSecond = c.RequestsPerSecond
	opts.Tokens = store
	opts.Logger = log
	client, err := api.NewHTTPClient(opts)
	if err != nil {
		return nil, err
	}

	width := d.width
	if width <= 0 {
		width = render.DefaultWidth
	}
	style := c.RenderStyle
	if d.profile == termenv.Ascii {
		style = render.StyleNoTTY
	}
	renderer, err := render.New(render.Options{Width: width, Style: style, Profile: d.profile})
	if err != nil {
		return nil, err
	}

	nav := router.NewNavigator(store)
	notes := notify.NewCenter(notify.WithDuration(c.NotificationDuration))

	a := &App{
		config:   c,
		log:      log.With("component", "cli"),
		db:       d.db,
		store:    store,
		nav:      nav,
		auth:     services.NewAuthService(client, store, log),
		chat:     chat.NewController(client, store, nav, notes, log),
		notes:    notes,
		renderer: renderer,
		in:       d.in,
		out:      d.out,
		spin:     d.spin,
		width:    width,
	}
	a.closers = append(a.closers, func() error { nav.Close(); return nil }, d.in.Close, d.db.Close)
	return a, nil
}

// Run restores the previous screen and runs the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx = session.NewContext(ctx, a.store)

	a.println("Welcome to gophchat (type 'help' for commands)")
	if a.route() == router.RouteChat {
		a.greet(ctx)
		_ = a.List(ctx)
	} else {
		a.println("Please login or register.")
	}

	runREPL(ctx, a, a.in)
}

// Close releases the input, the database and the log file.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (a *App) route() router.Route {
	return a.nav.Current()
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

func (a *App) greet(ctx context.Context) {
	s := session.FromContext(ctx).Current()
	if s.User != nil {
		a.println(fmt.Sprintf("Logged in as %s.", s.User.DisplayName()))
	}
}

func (a *App) status() string {
	r := a.route()
	s := a.store.Current()
	if r == router.RouteChat && s.User != nil {
		if conv, ok := a.chat.Active(); ok {
			return fmt.Sprintf("(%s | %s) %s", s.User.DisplayName(), conv.Title, r)
		}
		return fmt.Sprintf("(%s) %s", s.User.DisplayName(), r)
	}
	return string(r)
}

func openLogger(c *config.Config) (logging.Logger, func(), error) {
	var (
		out     io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if c.LogFile != "" {
		path, err := filex.ExpandHome(c.LogFile)
		if err != nil {
			return nil, nil, err
		}
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	log, err := logging.New(logging.Options{
		Backend: c.LogBackend,
		Level:   c.LogLevel,
		Format:  c.LogFormat,
		Output:  out,
	})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return log, closeFn, nil
}
