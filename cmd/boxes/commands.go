package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drake/boxes/config"
	"github.com/drake/boxes/element"
	"github.com/drake/boxes/internal/logging"
	"github.com/drake/boxes/lua"
	"github.com/drake/boxes/scripts"
	"github.com/drake/boxes/text"
	"github.com/drake/boxes/ui/tui"
)

var errNotTerminal = errors.New("preview requires a terminal on stdout")

// app holds state shared by every subcommand once the root pre-run hook
// has loaded config and built the logger.
type app struct {
	configPath string
	logLevel   string

	cfg config.Config
	log *zap.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "boxes",
		Short:         "Render bordered element trees described in Lua",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/boxes/config.toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		a.renderCmd(),
		a.dimsCmd(),
		a.viewCmd(),
		a.demoCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	log, err := logging.New(level, a.stderr)
	if err != nil {
		return err
	}
	a.log = log
	a.log.Debug("config loaded",
		zap.String("scripts_dir", cfg.Scripts.Dir),
		zap.Bool("plain", cfg.Render.Plain),
		zap.Int("cache_size", cfg.Cache.Size),
	)
	return nil
}

func (a *app) renderCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "render <script|->",
		Short: "Render a document script to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			doc, err := a.loadDocument(engine, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("plain") {
				plain = a.cfg.Render.Plain
			}
			return a.write(doc, plain)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "strip bold and other escape sequences")
	return cmd
}

func (a *app) dimsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dims <script|->",
		Short: "Print the kind and dimensions of each top-level element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			doc, err := a.loadDocument(engine, args[0])
			if err != nil {
				return err
			}
			for _, e := range doc {
				d := e.Dimensions()
				fmt.Fprintf(a.stdout, "%s %dx%d\n", element.KindOf(e), d.Width, d.Height)
			}
			return nil
		},
	}
}

func (a *app) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <script>",
		Short: "Preview a document script, reloading on demand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolveScript(a.cfg.Scripts.Dir, args[0])
			if err != nil {
				return err
			}
			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			return a.preview(cmd, path, func() (element.Document, error) {
				// Fresh globals per load; compiled chunks stay cached.
				if err := engine.Init(); err != nil {
					return nil, err
				}
				return engine.DoFile(path)
			})
		},
	}
}

func (a *app) demoCmd() *cobra.Command {
	var view, list bool
	cmd := &cobra.Command{
		Use:   "demo [name]",
		Short: "Render one of the built-in example scripts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, name := range scripts.Names() {
					fmt.Fprintln(a.stdout, name)
				}
				return nil
			}

			name := "demo"
			if len(args) == 1 {
				name = args[0]
			}
			src, err := scripts.Read(name)
			if err != nil {
				if hint := scripts.Suggest(name); hint != "" {
					return fmt.Errorf("unknown demo %q, did you mean %q?", name, hint)
				}
				return fmt.Errorf("unknown demo %q: %w", name, err)
			}

			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			load := func() (element.Document, error) {
				return engine.DoString(name+".lua", src)
			}
			if view {
				return a.preview(cmd, name, load)
			}
			doc, err := load()
			if err != nil {
				return err
			}
			return a.write(doc, a.cfg.Render.Plain)
		},
	}
	cmd.Flags().BoolVar(&view, "view", false, "open the interactive preview")
	cmd.Flags().BoolVar(&list, "list", false, "list the built-in examples")
	return cmd
}

func (a *app) newEngine() (*lua.Engine, error) {
	engine, err := lua.NewEngine(a.log, a.cfg.Cache.Size)
	if err != nil {
		return nil, err
	}
	if err := engine.Init(); err != nil {
		return nil, err
	}
	return engine, nil
}

// loadDocument runs the script named by arg; "-" reads the script from stdin.
func (a *app) loadDocument(engine *lua.Engine, arg string) (element.Document, error) {
	if arg == "-" {
		src, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return engine.DoString("stdin", string(src))
	}

	path, err := config.ResolveScript(a.cfg.Scripts.Dir, arg)
	if err != nil {
		return nil, err
	}
	a.log.Debug("running script", zap.String("path", path))
	return engine.DoFile(path)
}

func (a *app) write(doc element.Document, plain bool) error {
	if plain {
		_, err := io.WriteString(a.stdout, text.StripANSI(doc.String()))
		return err
	}
	w := bufio.NewWriter(a.stdout)
	if err := doc.Render(w); err != nil {
		return err
	}
	return w.Flush()
}

func (a *app) preview(cmd *cobra.Command, name string, load tui.Loader) error {
	f, ok := a.stdout.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return errNotTerminal
	}

	m := tui.NewModel(name, load, tui.Options{
		Plain: a.cfg.Render.Plain,
		Log:   a.log,
	})
	return tui.Run(cmd.Context(), m, tui.RunOptions{
		AltScreen: a.cfg.Preview.AltScreen,
		Input:     a.stdin,
		Output:    f,
	})
}
