// Package main provides the command-line interface for SaveKit.
// It extracts and classifies pages from HTML files, standard input or URLs
// and can capture the result into a local store.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mrjoshuak/savekit"
	"github.com/mrjoshuak/savekit/classify"
	"github.com/mrjoshuak/savekit/internal/capture"
	"github.com/mrjoshuak/savekit/internal/config"
	"github.com/mrjoshuak/savekit/internal/fetch"
	"github.com/mrjoshuak/savekit/internal/logging"
	"github.com/mrjoshuak/savekit/internal/simplifiers"
	"github.com/mrjoshuak/savekit/internal/store"
	"github.com/mrjoshuak/savekit/types"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the supported output formats.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatText OutputFormat = "text"
)

// Result is what the CLI prints for one input.
type Result struct {
	savekit.ExtractedArticle `yaml:",inline"`

	URL      string           `json:"url,omitempty" yaml:"url,omitempty"`
	SaveType savekit.SaveType `json:"saveType" yaml:"saveType"`
	Rule     string           `json:"rule,omitempty" yaml:"rule,omitempty"`
	ID       string           `json:"id,omitempty" yaml:"id,omitempty"`

	WordCount      int `json:"wordCount" yaml:"wordCount"`
	ReadingMinutes int `json:"readingMinutes" yaml:"readingMinutes"`
}

type options struct {
	inputs    []string
	urls      []string
	pageURL   string
	output    string
	outputDir string
	format    OutputFormat
	compact   bool
	explain   bool
	capture   bool
	tags      []string
	source    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("savekit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	inputFiles := fs.String("input", "", "Input HTML file path(s) (comma-separated, use '-' for stdin)")
	urls := fs.String("url", "", "Page URL(s) to fetch (comma-separated)")
	pageURL := fs.String("page-url", "", "URL the input HTML was loaded from, used to resolve links")
	outputDir := fs.String("output-dir", "", "Output directory for batch processing")
	outputFile := fs.String("output", "", "Output file path (default: stdout)")
	formatStr := fs.String("format", "json", "Output format: json, yaml, or text")
	compact := fs.Bool("compact", false, "Output compact JSON without indentation")
	explain := fs.Bool("explain", false, "Include the classification rule that matched")
	captureFlag := fs.Bool("capture", false, "Store the result in the local database")
	tags := fs.String("tags", "", "Tags to attach when capturing (comma-separated)")
	configDir := fs.String("config", ".", "Directory containing savekit.yaml")
	engineName := fs.String("engine", "", "Readability engine: native or shiori (overrides config)")
	fetcherName := fs.String("fetcher", "", "Fetcher for -url: http or browser (overrides config)")
	timeout := fs.Duration("timeout", 0, "Timeout for extraction (overrides config)")
	userID := fs.String("user", "", "User ID for captured records (overrides config)")
	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "SaveKit - Extract and classify saved pages\n\n")
		fmt.Fprintf(stderr, "Usage: savekit [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  savekit -input article.html -page-url https://example.com/post\n")
		fmt.Fprintf(stderr, "  savekit -url https://example.com/post -format yaml -explain\n")
		fmt.Fprintf(stderr, "  savekit -input a.html,b.html -output-dir ./extracted\n")
		fmt.Fprintf(stderr, "  cat article.html | savekit -input - -format text\n")
		fmt.Fprintf(stderr, "  savekit -url https://example.com/post -capture -tags reading,later\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showHelp {
		fs.Usage()
		return 0
	}
	if *showVersion {
		info := savekit.GetBuildInfo()
		fmt.Fprintf(stdout, "%s version %s (%s)\n", info.Name, info.Version, info.GoVersion)
		return 0
	}

	format := OutputFormat(strings.ToLower(*formatStr))
	if format != FormatJSON && format != FormatYAML && format != FormatText {
		fmt.Fprintf(stderr, "Invalid output format: %s. Must be one of: json, yaml, text\n", *formatStr)
		return 1
	}

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	if *engineName != "" {
		cfg.Engine = *engineName
	}
	if *fetcherName != "" {
		cfg.Fetcher = *fetcherName
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *userID != "" {
		cfg.UserID = *userID
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "Error configuring logging: %v\n", err)
		return 1
	}

	opts := options{
		inputs:    splitList(*inputFiles),
		urls:      splitList(*urls),
		pageURL:   *pageURL,
		output:    *outputFile,
		outputDir: *outputDir,
		format:    format,
		compact:   *compact,
		explain:   *explain,
		capture:   *captureFlag,
		tags:      splitList(*tags),
		source:    types.SourceCLI,
	}
	if len(opts.inputs) == 0 && len(opts.urls) == 0 {
		opts.inputs = []string{"-"}
	}

	app, err := newApp(cfg, log, opts)
	if err != nil {
		log.WithError(err).Error("Failed to initialize")
		return 1
	}
	defer app.close()

	failed := 0
	for _, input := range opts.inputs {
		if err := app.processInput(ctx, input, stdin, stdout); err != nil {
			log.WithError(err).WithField("input", input).Error("Failed to process input")
			failed++
		}
	}
	for _, u := range opts.urls {
		if err := app.processURL(ctx, u, stdout); err != nil {
			log.WithError(err).WithField("url", u).Error("Failed to process URL")
			failed++
		}
	}
	if failed > 0 {
		return 1
	}
	return 0
}

type app struct {
	cfg       config.Config
	log       *logrus.Logger
	opts      options
	extractor savekit.Extractor
	fetcher   fetch.Fetcher
	store     store.Store
	service   *capture.Service
	total     int
}

func newApp(cfg config.Config, log *logrus.Logger, opts options) (*app, error) {
	a := &app{
		cfg:  cfg,
		log:  log,
		opts: opts,
		extractor: savekit.New(
			savekit.WithOptions(cfg.ExtractionOptions()),
			savekit.WithLogger(log),
		),
		total: len(opts.inputs) + len(opts.urls),
	}

	switch cfg.Fetcher {
	case config.FetcherBrowser:
		a.fetcher = fetch.NewBrowser(cfg.Timeout, log)
	default:
		h := fetch.NewHTTP(cfg.UserAgent, cfg.Timeout, log)
		h.MaxBytes = cfg.MaxFetchBytes
		a.fetcher = h
	}

	if opts.capture {
		st, err := store.OpenBadger(cfg.StorePath, log)
		if err != nil {
			return nil, err
		}
		a.store = st
		a.service = &capture.Service{
			Fetcher:   a.fetcher,
			Extractor: a.extractor,
			Store:     st,
			Log:       log,
			Timeout:   cfg.Timeout,
			Retries:   cfg.Retries,
		}
	}
	return a, nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.WithError(err).Error("Error closing store")
		}
	}
}

func (a *app) processInput(ctx context.Context, input string, stdin io.Reader, stdout io.Writer) error {
	var r io.Reader = stdin
	if input != "-" {
		file, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer file.Close()
		r = file
	}

	html, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	result, err := a.handle(ctx, string(html), a.opts.pageURL)
	if err != nil {
		return err
	}
	return a.write(result, input, stdout)
}

func (a *app) processURL(ctx context.Context, rawURL string, stdout io.Writer) error {
	page, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}
	result, err := a.handle(ctx, page.HTML, page.URL)
	if err != nil {
		return err
	}
	return a.write(result, rawURL, stdout)
}

// handle extracts and classifies html, capturing it when requested.
func (a *app) handle(ctx context.Context, html, pageURL string) (*Result, error) {
	article, err := a.extractor.ExtractFromHTML(ctx, html, pageURL)
	if err != nil {
		return nil, fmt.Errorf("extracting article: %w", err)
	}

	rec := savekit.BuildRecord(savekit.SaveRecord{
		URL:    pageURL,
		UserID: a.cfg.UserID,
		Source: a.opts.source,
	}, article)

	result := &Result{
		ExtractedArticle: *article,
		URL:              pageURL,
		SaveType:         rec.SaveType,
		WordCount:        simplifiers.CountWords(article.Content),
		ReadingMinutes:   simplifiers.ReadingMinutes(article.Content),
	}
	if a.opts.explain {
		_, result.Rule = classify.Explain(&rec)
	}

	if a.service != nil {
		captured, err := a.service.Capture(ctx, capture.Request{
			UserID:  a.cfg.UserID,
			Source:  a.opts.source,
			URL:     pageURL,
			Article: article,
			Tags:    a.opts.tags,
		})
		if err != nil {
			return nil, err
		}
		result.ID = captured.ID
		result.SaveType = captured.Record.SaveType
	}
	return result, nil
}

func (a *app) write(result *Result, input string, stdout io.Writer) error {
	data, err := render(result, a.opts.format, a.opts.compact)
	if err != nil {
		return err
	}

	outputPath := a.outputPath(input)
	if outputPath == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if !strings.HasSuffix(string(data), "\n") {
			fmt.Fprintln(stdout)
		}
		return nil
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing output file %s: %w", outputPath, err)
	}
	a.log.WithFields(logrus.Fields{"input": input, "output": outputPath}).Info("Processed")
	return nil
}

// outputPath returns "" for stdout.
func (a *app) outputPath(input string) string {
	if a.opts.outputDir != "" {
		if err := os.MkdirAll(a.opts.outputDir, 0o755); err != nil {
			a.log.WithError(err).Warn("Cannot create output directory, using stdout")
			return ""
		}
		return filepath.Join(a.opts.outputDir, outputName(input, a.opts.format))
	}
	if a.opts.output != "" {
		if a.total == 1 {
			return a.opts.output
		}
		a.log.Warn("Multiple inputs with single output file specified. Using stdout.")
	}
	return ""
}

// outputName derives a file name from an input path or URL.
func outputName(input string, format OutputFormat) string {
	var ext string
	switch format {
	case FormatJSON:
		ext = ".json"
	case FormatYAML:
		ext = ".yaml"
	default:
		ext = ".txt"
	}

	base := input
	if input == "-" {
		base = "stdin"
	}
	if i := strings.Index(base, "://"); i >= 0 {
		base = strings.Trim(base[i+3:], "/")
		base = strings.NewReplacer("/", "_", "?", "_", "&", "_", ":", "_").Replace(base)
	} else {
		base = filepath.Base(base)
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if base == "" {
		base = "page"
	}
	return base + ext
}

func render(result *Result, format OutputFormat, compact bool) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(result)
	case FormatText:
		return []byte(renderText(result)), nil
	default:
		if compact {
			return json.Marshal(result)
		}
		return json.MarshalIndent(result, "", "  ")
	}
}

func renderText(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", r.Title)
	if r.Author != nil {
		fmt.Fprintf(&b, "Author: %s\n", *r.Author)
	}
	if r.SiteName != nil {
		fmt.Fprintf(&b, "Site: %s\n", *r.SiteName)
	}
	if r.PublishedTime != nil {
		fmt.Fprintf(&b, "Published: %s\n", *r.PublishedTime)
	}
	if r.Rule != "" {
		fmt.Fprintf(&b, "Type: %s (%s)\n", r.SaveType, r.Rule)
	} else {
		fmt.Fprintf(&b, "Type: %s\n", r.SaveType)
	}
	if r.Product.IsProduct && r.Product.Price != nil {
		fmt.Fprintf(&b, "Price: %s %s\n", *r.Product.Price, r.Product.Currency)
	}
	if r.Book.IsBook && r.Book.ISBN != nil {
		fmt.Fprintf(&b, "ISBN: %s\n", *r.Book.ISBN)
	}
	if r.ID != "" {
		fmt.Fprintf(&b, "ID: %s\n", r.ID)
	}
	fmt.Fprintf(&b, "Words: %d (%d min read)\n", r.WordCount, r.ReadingMinutes)
	b.WriteString("\n")
	b.WriteString(r.Content)
	b.WriteString("\n")
	return b.String()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
