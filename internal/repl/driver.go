package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/muesli/termenv"

	"github.com/leapstack-labs/squill/internal/exec"
	"github.com/leapstack-labs/squill/internal/render"
	"github.com/leapstack-labs/squill/internal/session"
)

// LineReader is the blocking input prompt the driver reads from.
// *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	SaveHistory(content string) error
}

// DriverConfig wires a Driver together.
type DriverConfig struct {
	Session    *session.Session
	Executor   *exec.Executor
	Presenter  *render.Presenter
	Reader     LineReader
	Out        io.Writer
	ErrOut     io.Writer
	Logger     *slog.Logger
	Terminator string
	Version    string
}

// Driver orchestrates the prompt → classify → execute → present loop.
type Driver struct {
	sess    *session.Session
	exec    *exec.Executor
	pres    *render.Presenter
	rl      LineReader
	out     io.Writer
	errOut  io.Writer
	styler  *termenv.Output
	logger  *slog.Logger
	term    string
	version string
}

// NewDriver returns a driver over the given collaborators.
func NewDriver(cfg DriverConfig) *Driver {
	d := &Driver{
		sess:    cfg.Session,
		exec:    cfg.Executor,
		pres:    cfg.Presenter,
		rl:      cfg.Reader,
		out:     cfg.Out,
		errOut:  cfg.ErrOut,
		logger:  cfg.Logger,
		term:    cfg.Terminator,
		version: cfg.Version,
	}
	if d.out == nil {
		d.out = os.Stdout
	}
	if d.errOut == nil {
		d.errOut = os.Stderr
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	if d.term == "" {
		d.term = ";"
	}
	if d.errOut == os.Stderr {
		d.styler = termenv.NewOutput(os.Stderr)
	}
	return d
}

// Run enters the REPL and loops until the user quits. A nil return means a
// normal exit; the process exits with status 0. Resource cleanup (history
// flush, connection close) belongs to the caller's defers, so every exit
// path out of this loop releases them exactly once.
func (d *Driver) Run(ctx context.Context) error {
	_, _ = fmt.Fprintln(d.out, WelcomeText(d.version))

	prompt := fmt.Sprintf("%s => ", d.sess.Conn.DatabaseName())
	for {
		d.rl.SetPrompt(prompt)
		raw, err := d.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			d.logger.Info("quitting")
			return nil
		}
		if err != nil {
			return err
		}

		cleaned := Clean(raw, d.term)
		in := Classify(cleaned)
		if in.Kind != KindEmpty {
			_ = d.rl.SaveHistory(raw)
		}

		switch in.Kind {
		case KindQuit:
			d.logger.Info("quitting")
			return nil
		case KindState:
			if err := RunStateCommand(d.sess.Settings, in.Raw, d.out); err != nil {
				d.reportError(err)
			}
		case KindHelp:
			_, _ = fmt.Fprintln(d.out, helpFor(in.Raw))
		case KindDist:
			_, _ = fmt.Fprintln(d.out, DistTermsText(d.version))
		case KindMetadata:
			d.runMeta(ctx, in.Raw)
		case KindQuery:
			d.runQuery(ctx, in.Raw)
		case KindEmpty:
			if d.confirmQuit() {
				d.logger.Info("no input, so quitting")
				return nil
			}
		}
	}
}

// runQuery extracts and prompts for parameters, executes the statement and
// presents the result. Execution errors are reported and the loop goes on.
func (d *Driver) runQuery(ctx context.Context, raw string) {
	d.sess.Query = raw
	d.sess.Result = nil

	params, err := PromptParams(ExtractParams(raw), d.promptParam)
	if err != nil {
		d.reportError(err)
		return
	}
	d.sess.Params = params

	rs, err := d.exec.Run(ctx, d.sess.Settings, raw, params)
	if err != nil {
		d.reportError(err)
		return
	}
	d.sess.Result = rs

	if err := d.pres.Present(rs, d.sess.Settings); err != nil {
		d.reportError(err)
	}
}

// promptParam blocks for one parameter value. Parameter prompts are not
// saved to history.
func (d *Driver) promptParam(name string) (string, error) {
	d.rl.SetPrompt(name + ": ")
	return d.rl.Readline()
}

// confirmQuit asks whether to quit on empty input. Any answer starting
// with y or Y quits; anything else resumes the loop.
func (d *Driver) confirmQuit() bool {
	d.rl.SetPrompt("no input, do you want to quit (yes/no)? ")
	answer, err := d.rl.Readline()
	if errors.Is(err, io.EOF) {
		return true
	}
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}

// reportError writes the error to the user-facing error stream, in red
// when it is a color-capable terminal, and logs the full chain at debug
// level.
func (d *Driver) reportError(err error) {
	msg := err.Error()
	if d.styler != nil {
		msg = d.styler.String(msg).Foreground(termenv.ANSIRed).String()
	}
	_, _ = fmt.Fprintln(d.errOut, msg)
	d.logger.Debug("command failed", slog.Any("error", err))
}
