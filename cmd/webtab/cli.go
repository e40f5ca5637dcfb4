package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/webtab"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Service webtab.ExtractionService
	Runs    webtab.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `help:"Path to the run history database" env:"WEBTAB_DB" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Extract ExtractCmd `cmd:"" help:"Extract a table from a web page"`
	History HistoryCmd `cmd:"" help:"List saved runs"`
	Show    ShowCmd    `cmd:"" help:"Show a saved run"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved run"`
	Serve   ServeCmd   `cmd:"" help:"Serve the JSON API"`
}

// PipelineFlags configures how pages are fetched and how instructions are
// translated. Shared by the extract and serve commands.
type PipelineFlags struct {
	RenderTimeout time.Duration `default:"120s" env:"WEBTAB_RENDER_TIMEOUT" help:"Browser navigation timeout"`
	IdleTimeout   time.Duration `default:"30s" env:"WEBTAB_IDLE_TIMEOUT" help:"Wait for network idle and DOM stability"`
	HTTPTimeout   time.Duration `name:"http-timeout" default:"30s" env:"WEBTAB_HTTP_TIMEOUT" help:"Plain fetch timeout"`
	NoRender      bool          `help:"Skip the browser and use the plain fetch only"`
	Stealth       bool          `help:"Inject anti-bot evasions into the browser page"`
	ChromeTLS     bool          `name:"chrome-tls" help:"Use a Chrome TLS fingerprint for the plain fetch"`
	BrowserBin    string        `env:"WEBTAB_BROWSER_BIN" help:"Path to a Chrome or Chromium binary"`
	NoSandbox     bool          `help:"Disable the browser sandbox (needed in some containers)"`

	Translator       string        `enum:"gemini,openai" default:"gemini" env:"WEBTAB_TRANSLATOR" help:"Instruction translator (gemini, openai)"`
	Model            string        `env:"WEBTAB_MODEL" help:"Translator model (default depends on translator)"`
	TranslateTimeout time.Duration `default:"20s" help:"Translator request timeout"`
	GeminiAPIKey     string        `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	OpenAIAPIKey     string        `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	OpenAIBaseURL    string        `name:"openai-base-url" env:"OPENAI_BASE_URL" help:"OpenAI-compatible API base URL"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL         string `arg:"" help:"Page URL"`
	Mode        string `short:"m" default:"tables" help:"Extraction mode: tables, headings, row or custom"`
	Selector    string `short:"s" help:"CSS selector (custom mode)"`
	Instruction string `short:"i" help:"Natural-language description of the data (custom mode)"`
	Format      string `short:"f" enum:"table,csv,json" default:"table" help:"Output format (table, csv, json)"`
	CSV         string `name:"csv" type:"path" help:"Also write the table as CSV to this file"`
	Save        bool   `help:"Save the result to run history"`

	PipelineFlags `embed:""`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL    string `help:"Only show runs for this URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of runs to show"`
	Offset int    `help:"Number of runs to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Run ID"`
	Format string `short:"f" enum:"table,csv,json" default:"table" help:"Output format (table, csv, json)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Run ID"`
	Force bool   `help:"Confirm deletion"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string   `default:":8080" env:"WEBTAB_ADDR" help:"Listen address"`
	APIKeys []string `name:"api-key" env:"WEBTAB_API_KEYS" help:"Require one of these API keys (repeatable)"`

	PipelineFlags `embed:""`
}
