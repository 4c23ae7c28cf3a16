package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const appName = "spitball"

// Exit codes.
const (
	exitOK        = 0
	exitFatal     = 1
	exitNoMatches = 2
)

// version is the application version, set via ldflags.
var version = "dev"

// app carries the collaborators of one invocation.
type app struct {
	stdin         io.Reader
	stdout        io.Writer
	stderr        io.Writer
	clipboard     Sink
	readClipboard func() (string, error)
	getwd         func() (string, error)
}

func newApp() *app {
	return &app{
		stdin:         os.Stdin,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		clipboard:     newClipboardSink(),
		readClipboard: clipboard.ReadAll,
		getwd:         os.Getwd,
	}
}

func newRootCmd(a *app) *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   appName + " PATTERN",
		Short: "Bundle files matching a glob into one Markdown document on the clipboard.",
		Long: `spitball expands a glob pattern (supporting ** across directories),
skips .git paths, .gitignore'd, binary and oversized (>100 KB) files, and
renders the rest as Markdown: one header per directory and file, each file
in a fenced code block. The document is copied to the clipboard, or printed
when no clipboard is available.

Exit status is 0 on success, 2 when nothing matched, 1 on errors.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			used, cfgWarn, err := readConfig(v, cfgFile)
			if err != nil {
				return err
			}
			opts, err := loadOptions(v)
			if err != nil {
				return err
			}

			logger := newLogger(opts.Verbose, opts.Quiet, a.stderr)
			defer logger.Sync()
			if cfgWarn != nil {
				logger.Warn("ignoring config file", zap.Error(cfgWarn))
			}
			if used != "" {
				logger.Debug("using config file", zap.String("path", used))
			}
			return a.run(args[0], opts, logger)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/spitball/config.toml)")
	bindFlags(cmd, v)
	cmd.AddCommand(newScaffoldCmd(a))
	return cmd
}

// run collects the files matching pattern, builds the document and hands it
// to the clipboard.
func (a *app) run(pattern string, opts Options, logger *zap.Logger) error {
	cwd, err := a.getwd()
	if err != nil {
		return fmt.Errorf("error resolving working directory: %w", err)
	}
	root, rel := resolveScanRoot(cwd, pattern)
	fsys := os.DirFS(root)

	matcher := loadIgnoreMatcher(fsys, opts.IgnoreEngine, logger)
	logger.Debug("scanning", zap.String("root", root), zap.String("pattern", rel), zap.String("ignore", matcher.Name()))

	col, err := NewCollector(fsys, NewPathFilter(matcher), logger).Collect(rel)
	if col != nil && !opts.Quiet {
		logFileStatus(a.stderr, col)
	}
	if errors.Is(err, ErrNoMatches) {
		logger.Info("no files matched", zap.String("pattern", pattern))
		return err
	}
	if err != nil {
		return err
	}

	files := col.Files
	if opts.Interactive {
		files, err = selectFiles(files)
		if errors.Is(err, errSelectionAborted) {
			logger.Info("interactive selection aborted")
			return nil
		}
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("%w: nothing selected", ErrNoMatches)
		}
	}

	if opts.ShowTree {
		fmt.Fprint(a.stderr, renderTree(buildTree(files)))
	}

	builder := &DocumentBuilder{Language: newLanguageResolver(a.languageData(opts, logger))}
	doc := builder.Build(files)

	summary := summarize(files)
	fields := []zap.Field{zap.Int("files", summary.TotalFiles), zap.Int64("bytes", summary.TotalSize)}
	if opts.Tokens {
		if tk, err := loadTiktoken(opts.TokenModel, logger); err != nil {
			logger.Warn("token counting disabled", zap.Error(err))
		} else {
			summary.TotalTokens = tk.CountTokens(doc)
			fields = append(fields, zap.Int("tokens", summary.TotalTokens))
		}
	}

	sink, err := deliver(doc, a.clipboard, writerSink{w: a.stdout}, logger)
	if err != nil {
		return err
	}
	logger.Info("document delivered", append(fields, zap.String("sink", sink.Name()))...)
	return nil
}

// languageData loads the configured languages.yml, or the first one found in
// the search paths. Failures leave fence tags to chroma.
func (a *app) languageData(opts Options, logger *zap.Logger) *LoadedLanguageData {
	p := opts.LanguagesFile
	if p == "" {
		p = findLanguageFile(languageSearchPaths())
	}
	if p == "" {
		return nil
	}
	ld, err := loadLanguageData(p)
	if err != nil {
		logger.Warn("could not load language definitions", zap.String("path", p), zap.Error(err))
		return nil
	}
	logger.Debug("loaded language definitions", zap.String("path", p), zap.Int("languages", len(ld.Langs)))
	return ld
}

// logFileStatus lists which files were included and excluded.
func logFileStatus(w io.Writer, col *Collection) {
	for _, f := range col.Files {
		fmt.Fprintf(w, "+ %s\n", f.Path)
	}
	for _, e := range col.Excluded {
		fmt.Fprintf(w, "- %s (%s)\n", e.Path, e.Reason)
	}
}

func newScaffoldCmd(a *app) *cobra.Command {
	var from string
	var dryRun, edit bool

	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Create the directories and files of a tree listing from the clipboard.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			var err error
			if from != "" {
				var raw []byte
				raw, err = os.ReadFile(from)
				text = string(raw)
			} else {
				text, err = a.readClipboard()
			}
			if err != nil {
				return fmt.Errorf("error reading tree listing: %w", err)
			}

			entries, err := parseTreeListing(text)
			if err != nil {
				return err
			}
			base, err := a.getwd()
			if err != nil {
				return fmt.Errorf("error resolving working directory: %w", err)
			}
			files, err := scaffold(base, entries, dryRun, a.stdout)
			if err != nil {
				return err
			}
			if edit && !dryRun {
				return editFiles(files, a.stdin, a.stdout, a.stderr)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Read the tree listing from a file instead of the clipboard")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print mkdir/touch lines without creating anything")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Open each created file in $EDITOR")
	return cmd
}

// execute runs the command line and maps the outcome to an exit code.
func execute(a *app, args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, ErrNoMatches):
		return exitNoMatches
	default:
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitFatal
	}
}

func main() {
	os.Exit(execute(newApp(), os.Args[1:]))
}
