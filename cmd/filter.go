package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"sync"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/rubiojr/tracklog/pkg/config"
	"github.com/rubiojr/tracklog/pkg/log"
	"github.com/rubiojr/tracklog/pkg/reload"
	"github.com/urfave/cli/v3"
)

// stdinSource is the file name used for lines without a [file] prefix.
const stdinSource = "stdin"

// linePattern matches "[file] msg" and "[file][tag] msg".
var linePattern = regexp.MustCompile(`^\[([^\[\]]+)\](?:\[([^\[\]]*)\])?(?: (.*))?$`)

var (
	fileStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

type filterOptions struct {
	configPath string
	watch      bool
	color      bool
	dump       bool
}

// FilterCommand creates the filter command
func FilterCommand() *cli.Command {
	return &cli.Command{
		Name:  "filter",
		Usage: "Filter [file][tag] prefixed lines from stdin through the rule file",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Reapply the rule file when it changes or on SIGHUP",
			},
			&cli.BoolFlag{
				Name:  "color",
				Usage: "Color the [file][tag] prefix",
			},
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "Print the rules and the files and tags seen when input ends",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return filter(ctx, os.Stdin, os.Stdout, filterOptions{
				configPath: c.String("config"),
				watch:      c.Bool("watch"),
				color:      c.Bool("color"),
				dump:       c.Bool("dump"),
			})
		},
	}
}

// filter re-emits every line of in through loggers bound to the line's file
// prefix, so the rule file decides what reaches out.
func filter(ctx context.Context, in io.Reader, out io.Writer, opts filterOptions) error {
	var sink io.Writer = out
	if opts.color {
		sink = &colorWriter{w: out}
	}

	s, err := loadSettings(opts.configPath, sink)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if opts.watch {
		apply := func() error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg.Apply(s)
			return nil
		}

		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := reload.Watch(ctx, opts.configPath, apply); err != nil {
				logger.Tagged("watch", "not watching config file:", err)
			}
		}()
		go func() {
			defer wg.Done()
			reloadOnSignal(ctx, apply)
		}()
	}

	loggers := make(map[string]*log.Logger)
	loggerFor := func(name string) *log.Logger {
		l, ok := loggers[name]
		if !ok {
			l = s.For(name)
			loggers[name] = l
		}
		return l
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			loggerFor(stdinSource).Print(line)
			continue
		}

		l := loggerFor(m[1])
		if m[3] == "" {
			l.Tagged(m[2])
		} else {
			l.Tagged(m[2], m[3])
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	cancel()
	wg.Wait()

	if opts.dump {
		fmt.Fprint(out, renderSnapshot(log.DefaultDumpLabel, s.Snapshot()))
	}
	return nil
}

// reloadOnSignal calls apply on every SIGHUP until ctx is done
func reloadOnSignal(ctx context.Context, apply func() error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sigCh:
			logger.Tagged("reload", "received SIGHUP, reloading configuration")
			if err := apply(); err != nil {
				logger.Tagged("reload", "failed to reload configuration:", err)
			}
		}
	}
}

// colorWriter styles the [file][tag] prefix of each line written through it.
type colorWriter struct {
	w io.Writer
}

func (cw *colorWriter) Write(p []byte) (int, error) {
	line := strings.TrimSuffix(string(p), "\n")
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return cw.w.Write(p)
	}

	var b strings.Builder
	b.WriteString(fileStyle.Render("[" + m[1] + "]"))
	if m[2] != "" {
		b.WriteString(tagStyle.Render("[" + m[2] + "]"))
	}
	if m[3] != "" {
		b.WriteString(" " + m[3])
	}
	b.WriteString("\n")

	if _, err := io.WriteString(cw.w, b.String()); err != nil {
		return 0, err
	}
	return len(p), nil
}
