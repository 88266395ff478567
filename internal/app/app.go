package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sys/unix"

	"tmenu/internal/candidates"
	"tmenu/internal/config"
	"tmenu/internal/editor"
	"tmenu/internal/menu"
	"tmenu/internal/terminal"
)

// LogEnv names the environment variable that overrides the configured log file
const LogEnv = "TMENU_LOG"

// Main runs tmenu and returns the process exit status. The terminal is
// restored before Main returns, whatever the outcome.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a, fs, err := ParseArguments(args)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n\n", progName, err)
		fmt.Fprint(stderr, usage(fs, editor.DefaultKeyMap()))
		return exitUsage
	}

	cfg, err := loadConfig(a.ConfigPath)
	if a.Help {
		if err != nil {
			cfg = config.DefaultConfig()
		}
		fmt.Fprint(stdout, usage(fs, editor.NewKeyMap(editor.Bindings(cfg.Keys))))
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		return exitFailure
	}

	placement, err := resolvePlacement(a, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		return exitFailure
	}

	logPath := cfg.LogFile
	if env := os.Getenv(LogEnv); env != "" {
		logPath = env
	}
	closeLog, err := setupLogging(logPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
	}
	defer closeLog()
	log.Printf("config loaded (path %q), placement %s", configSource(a.ConfigPath), placement)

	line, err := run(cfg, placement, stdin)
	if err != nil {
		log.Printf("exiting: %v", err)
		if !silent(err) {
			fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		}
		return exitCode(err)
	}

	fmt.Fprintln(stdout, line)
	return exitOK
}

func loadConfig(path string) (*config.Config, error) {
	svc := config.NewConfigService()
	if path != "" {
		return svc.LoadFromPath(path)
	}
	return svc.Load()
}

// resolvePlacement prefers a placement flag over the configured one
func resolvePlacement(a *Arguments, cfg *config.Config) (terminal.Placement, error) {
	if a.PlacementSet {
		return a.Placement, nil
	}
	p, err := terminal.ParsePlacement(cfg.Placement)
	if err != nil {
		return terminal.PlaceDefault, fmt.Errorf("invalid config: %w", err)
	}
	return p, nil
}

// run opens the terminal, reads the candidates and drives one editing
// session. It returns the line to print on standard output.
func run(cfg *config.Config, placement terminal.Placement, stdin io.Reader) (string, error) {
	sess, err := terminal.Open(terminal.Options{Term: cfg.Term})
	if err != nil {
		return "", &TerminalUnavailableError{Term: termName(cfg), Err: err}
	}
	defer func() {
		if err := sess.LeaveRawMode(); err != nil {
			log.Printf("terminal teardown: %v", err)
		}
	}()
	log.Printf("opened terminal %q", sess.Name())

	cands, err := candidates.Read(stdin)
	if err != nil {
		return "", &InputReadError{Err: err}
	}
	log.Printf("read %d candidates", len(cands))

	if err := sess.EnterRawMode(placement); err != nil {
		return "", &TerminalUnavailableError{Term: sess.Name(), Err: err}
	}

	m := menu.New(sess, cands)
	model := editor.New(m, editor.NewKeyMap(editor.Bindings(cfg.Keys)))
	p := tea.NewProgram(model,
		tea.WithInput(sess.File()),
		tea.WithOutput(sess.File()),
		tea.WithoutRenderer(),
	)

	stop := watchHangup(p)
	final, err := p.Run()
	stop()

	m.Clear()
	if lerr := sess.LeaveRawMode(); lerr != nil {
		log.Printf("terminal teardown: %v", lerr)
	}

	if errors.Is(err, tea.ErrInterrupted) {
		return "", errInterrupted
	}
	if err != nil {
		return "", fmt.Errorf("line editor failed: %w", err)
	}

	ed, ok := final.(editor.Model)
	if !ok {
		return "", errAborted
	}
	line, outcome := ed.Result()
	log.Printf("session ended: %s", outcome)

	switch outcome {
	case editor.Accepted:
		return line, nil
	case editor.EndOfInput:
		return "", nil
	case editor.Interrupted:
		return "", errInterrupted
	default:
		return "", errAborted
	}
}

// watchHangup ends the program when the terminal goes away, so the
// teardown after Run still happens. Resizes arrive from bubbletea itself
// as WindowSizeMsg because its output is the tty.
func watchHangup(p *tea.Program) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGHUP)
	done := make(chan struct{})

	go func() {
		select {
		case <-sigs:
			p.Quit()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

func configSource(path string) string {
	if path != "" {
		return path
	}
	return config.NewConfigService().Path()
}

func termName(cfg *config.Config) string {
	if cfg.Term != "" {
		return cfg.Term
	}
	return os.Getenv("TERM")
}
