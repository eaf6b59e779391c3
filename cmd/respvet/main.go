package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/respvet/classify"
	"github.com/standardbeagle/respvet/config"
	"github.com/standardbeagle/respvet/internal/debug"
	"github.com/standardbeagle/respvet/internal/version"
	"github.com/standardbeagle/respvet/lang"
	"github.com/standardbeagle/respvet/project"
	"github.com/standardbeagle/respvet/quality"
)

var Version = version.Version

func main() {
	app := &cli.App{
		Name:                   "respvet",
		Usage:                  "Validate model-generated code and structured responses",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   ".respvet.toml",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write trace output to a log file",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				path, err := debug.InitDebugLogFile()
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "debug log: %s\n", path)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			return debug.CloseDebugLog()
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Aliases:   []string{"k"},
				Usage:     "Validate code files or a raw response (stdin with no arguments)",
				ArgsUsage: "[files...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "lang",
						Aliases: []string{"l"},
						Usage:   "Language override (python, javascript, typescript)",
					},
					&cli.StringFlag{
						Name:    "root",
						Aliases: []string{"r"},
						Usage:   "Project root for context-consistency checks",
					},
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON",
					},
					&cli.BoolFlag{
						Name:  "response",
						Usage: "Treat input as a raw model response (classify, then grade code blocks)",
					},
				},
				Action: checkCommand,
			},
			{
				Name:      "watch",
				Aliases:   []string{"w"},
				Usage:     "Re-validate files whenever they change",
				ArgsUsage: "[files...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "lang",
						Aliases: []string{"l"},
						Usage:   "Language override",
					},
					&cli.StringFlag{
						Name:    "root",
						Aliases: []string{"r"},
						Usage:   "Project root for context-consistency checks",
					},
				},
				Action: watchCommand,
			},
			{
				Name:      "accuracy",
				Aliases:   []string{"a"},
				Usage:     "Score structured-response accuracy over a directory of response files",
				ArgsUsage: "<dir>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "pattern",
						Usage: "Glob for response files within the directory",
						Value: "**/*.txt",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent classification workers",
						Value: runtime.NumCPU(),
					},
				},
				Action: accuracyCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	return config.Load(c.String("config"))
}

// buildContext walks the project root and snapshots every file matching
// the configured include/exclude globs.
func buildContext(root string, cfg *config.Config) (*project.Context, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path %q: %w", root, err)
	}

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range cfg.Exclude {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if d.IsDir() {
			return nil
		}
		for _, pattern := range cfg.Include {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				paths = append(paths, rel)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan project root %s: %w", absRoot, err)
	}

	debug.Log("cli", "context: %d files under %s\n", len(paths), absRoot)
	return project.NewContext(paths), nil
}

func languageForInput(c *cli.Context, path string) lang.Language {
	if tag := c.String("lang"); tag != "" {
		return lang.Normalize(tag)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return lang.Python
	case ".js", ".jsx":
		return lang.JavaScript
	case ".ts", ".tsx":
		return lang.TypeScript
	}
	return lang.Unknown
}

func checkCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var ctx *project.Context
	if root := c.String("root"); root != "" {
		ctx, err = buildContext(root, cfg)
		if err != nil {
			return err
		}
	}

	assessor := quality.NewAssessor(cfg)

	if c.NArg() == 0 {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		return checkOne(c, assessor, ctx, "<stdin>", string(input))
	}

	var failed bool
	for _, path := range c.Args().Slice() {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := checkOne(c, assessor, ctx, path, string(content)); err != nil {
			if err == errCheckFailed {
				failed = true
				continue
			}
			return err
		}
	}
	if failed {
		return errCheckFailed
	}
	return nil
}

var errCheckFailed = cli.Exit("validation failed", 1)

func checkOne(c *cli.Context, assessor *quality.Assessor, ctx *project.Context, name, content string) error {
	if c.Bool("response") {
		verdict := assessor.AssessResponse(content, ctx, nil)
		if c.Bool("json") {
			return printJSON(verdict)
		}
		fmt.Printf("== %s ==\n%s\n", name, verdict.Report())
		if !verdict.Classification.Valid {
			return errCheckFailed
		}
		return nil
	}

	language := languageForInput(c, name)
	verdict := assessor.Assess(content, language, ctx, nil)
	if c.Bool("json") {
		return printJSON(verdict)
	}
	fmt.Printf("== %s ==\n%s\n", name, verdict.Report())
	if len(verdict.Errors) > 0 || !verdict.SyntaxValid {
		return errCheckFailed
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// watchCommand re-validates the named files on every write, with a short
// debounce so editors that write twice do not double-report.
func watchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("watch requires at least one file argument")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var ctx *project.Context
	if root := c.String("root"); root != "" {
		ctx, err = buildContext(root, cfg)
		if err != nil {
			return err
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	for _, path := range c.Args().Slice() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = true
		// Watch the directory: editors replace files on save, which
		// drops the watch on the file itself.
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", abs, err)
		}
	}

	assessor := quality.NewAssessor(cfg)
	recheck := func(path string) {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
			return
		}
		language := languageForInput(c, path)
		verdict := assessor.Assess(string(content), language, ctx, nil)
		fmt.Printf("== %s (%s) ==\n%s\n", path, time.Now().Format("15:04:05"), verdict.Report())
	}

	for _, path := range c.Args().Slice() {
		abs, _ := filepath.Abs(path)
		recheck(abs)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	pending := make(map[string]*time.Timer)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if timer, ok := pending[abs]; ok {
				timer.Stop()
			}
			path := abs
			pending[abs] = time.AfterFunc(200*time.Millisecond, func() { recheck(path) })
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-sigCh:
			return nil
		}
	}
}

func accuracyCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("accuracy requires exactly one directory argument")
	}
	dir := c.Args().First()

	pattern := c.String("pattern")
	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no response files matching %q under %s", pattern, dir)
	}
	sort.Strings(matches)

	responses := make([]string, 0, len(matches))
	for _, rel := range matches {
		content, err := os.ReadFile(filepath.Join(dir, rel))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}
		responses = append(responses, string(content))
	}

	score, err := classify.AccuracyConcurrent(c.Context, responses, c.Int("workers"))
	if err != nil {
		return err
	}

	fmt.Printf("Responses: %d\n", len(responses))
	fmt.Printf("Structured-response accuracy: %.1f%%\n", score*100)
	return nil
}
