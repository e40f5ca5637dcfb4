package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webtab"
	"github.com/fwojciec/webtab/gemini"
	"github.com/fwojciec/webtab/goquery"
	webtabhttp "github.com/fwojciec/webtab/http"
	"github.com/fwojciec/webtab/openai"
	"github.com/fwojciec/webtab/rod"
	"github.com/fwojciec/webtab/scrape"
	webtabslog "github.com/fwojciec/webtab/slog"
	"github.com/fwojciec/webtab/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// SQLite database backing run history. Opened only by commands that
	// need it.
	DB *sqlite.DB

	// closers release pipeline resources when Run returns.
	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webtab"),
		kong.Description("Extract tabular data from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webtab --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = m.DBPath
	}

	var pipeline *PipelineFlags
	needsDB := false
	switch kongCtx.Command() {
	case "extract <url>":
		pipeline = &cli.Extract.PipelineFlags
		needsDB = cli.Extract.Save
	case "serve":
		pipeline = &cli.Serve.PipelineFlags
		needsDB = true
	case "history", "show <id>", "delete <id>":
		needsDB = true
	}

	if needsDB {
		if dir := filepath.Dir(dbPath); dir != "." {
			_ = os.MkdirAll(dir, 0755)
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set WEBTAB_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	if pipeline != nil {
		svc, err := m.newExtractionService(ctx, *pipeline, deps.Logger)
		if err != nil {
			return err
		}
		deps.Service = svc
	}

	return kongCtx.Run(deps)
}

// newExtractionService wires the fetch paths, extractor and optional
// translator into one pipeline.
func (m *Main) newExtractionService(ctx context.Context, flags PipelineFlags, logger *slog.Logger) (webtab.ExtractionService, error) {
	fetcher := &scrape.FallbackFetcher{Logger: logger}

	if !flags.NoRender {
		opts := []rod.Option{
			rod.WithNavigationTimeout(flags.RenderTimeout),
			rod.WithIdleTimeout(flags.IdleTimeout),
		}
		if flags.BrowserBin != "" {
			opts = append(opts, rod.WithBin(flags.BrowserBin))
		}
		if flags.NoSandbox {
			opts = append(opts, rod.WithNoSandbox())
		}
		if flags.Stealth {
			opts = append(opts, rod.WithStealth())
		}
		renderer := rod.NewFetcher(opts...)
		m.closers = append(m.closers, renderer)
		fetcher.Renderer = webtabslog.NewLoggingFetcher(renderer, logger.With("path", webtab.SourceRendered))
	}

	httpOpts := []webtabhttp.Option{webtabhttp.WithTimeout(flags.HTTPTimeout)}
	if flags.ChromeTLS {
		httpOpts = append(httpOpts, webtabhttp.WithChromeTLS())
	}
	plain := webtabhttp.NewFetcher(httpOpts...)
	m.closers = append(m.closers, plain)
	fetcher.Plain = webtabslog.NewLoggingFetcher(plain, logger.With("path", webtab.SourcePlainFetch))

	translator, err := newTranslator(ctx, flags, logger)
	if err != nil {
		return nil, err
	}

	svc := &scrape.Service{
		Fetcher:    webtabslog.NewLoggingPageFetcher(fetcher, logger),
		Extractor:  webtabslog.NewLoggingExtractor(goquery.NewExtractor(), logger),
		Translator: translator,
		Logger:     logger,
	}
	return webtabslog.NewLoggingExtractionService(svc, logger), nil
}

// newTranslator returns the configured instruction translator, or nil when
// no API key is available. Without a translator instructions resolve to
// the default selector.
func newTranslator(ctx context.Context, flags PipelineFlags, logger *slog.Logger) (webtab.Translator, error) {
	switch flags.Translator {
	case "openai":
		if flags.OpenAIAPIKey == "" {
			logger.Warn("OPENAI_API_KEY not set, instructions will use the default selector")
			return nil, nil
		}
		opts := []openai.Option{openai.WithTimeout(flags.TranslateTimeout)}
		if flags.Model != "" {
			opts = append(opts, openai.WithModel(flags.Model))
		}
		client := openai.NewClient(flags.OpenAIAPIKey, flags.OpenAIBaseURL)
		return webtabslog.NewLoggingTranslator(openai.NewTranslator(client, opts...), logger), nil
	default:
		if flags.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY not set, instructions will use the default selector")
			return nil, nil
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  flags.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		opts := []gemini.Option{gemini.WithTimeout(flags.TranslateTimeout)}
		if flags.Model != "" {
			opts = append(opts, gemini.WithModel(flags.Model))
		}
		return webtabslog.NewLoggingTranslator(gemini.NewTranslator(client, opts...), logger), nil
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "webtab.db"
	}
	return filepath.Join(home, ".webtab", "webtab.db")
}
