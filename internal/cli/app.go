package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/dmitrijs2005/ticketsys/internal/config"
	"github.com/dmitrijs2005/ticketsys/internal/directory"
	"github.com/dmitrijs2005/ticketsys/internal/logging"
	"github.com/dmitrijs2005/ticketsys/internal/session"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config      *config.Config
	logger      logging.Logger
	processor   *session.Processor
	in          io.Reader
	out         io.Writer
	interactive bool
}

// NewApp builds an App reading commands from standard input, answering on
// standard output and logging to standard error.
func NewApp(c *config.Config) (*App, error) {
	return newApp(c, os.Stdin, os.Stdout, os.Stderr, isTerminal(int(os.Stdin.Fd())))
}

func newApp(c *config.Config, in io.Reader, out, logOut io.Writer, interactive bool) (*App, error) {
	base, err := logging.New(logOut, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := base.With("run_id", uuid.NewString())

	hash, err := directory.HashByName(c.Hash)
	if err != nil {
		return nil, err
	}

	table, err := directory.New(c.Capacity, directory.WithHash(hash))
	if err != nil {
		return nil, fmt.Errorf("directory init error: %w", err)
	}

	p := session.NewProcessor(table, logger, session.WithSlowThreshold(c.SlowCommandThreshold))

	return &App{
		config:      c,
		logger:      logger.With("module", "cli"),
		processor:   p,
		in:          in,
		out:         out,
		interactive: interactive,
	}, nil
}

// initSignalHandler cancels the run on SIGINT/SIGTERM. The returned func
// detaches the handler.
func (a *App) initSignalHandler(cancelFunc context.CancelFunc) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run processes commands until exit, end of input, or a termination signal.
func (a *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	stop := a.initSignalHandler(cancelFunc)
	defer stop()

	a.logger.Info(ctx, "starting interpreter",
		"capacity", a.config.Capacity, "hash", a.config.Hash, "interactive", a.interactive)

	w := bufio.NewWriter(a.out)
	err := runREPL(ctx, a.processor, a.in, w, a.interactive)
	if ferr := w.Flush(); err == nil {
		err = ferr
	}

	st := a.processor.Stats()
	a.logger.Info(ctx, "interpreter stopped",
		"live", st.Live, "load_factor", st.LoadFactor, "max_probe", st.MaxProbe)

	if err != nil {
		a.logger.Error(ctx, "input error", "error", err)
	}
	return err
}
