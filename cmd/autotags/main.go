package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goautotags/internal/app"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath  string
		envFiles    string
		serve       bool
		check       bool
		showVersion bool
		temperature float64
	)
	var cfg app.Config

	flag.StringVar(&configPath, "config", os.Getenv("AUTOTAGS_CONFIG"), "Path to YAML or JSON config file")
	flag.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files to load before reading the environment")
	flag.StringVar(&cfg.InputPath, "input", "-", "Document to tag; '-' reads stdin")
	flag.StringVar(&cfg.Method, "method", "", "Extraction method: builtin or remote")
	flag.StringVar(&cfg.APIKey, "llm.key", "", "API key for the completion service")
	flag.StringVar(&cfg.LLMBaseURL, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&cfg.LLMModel, "llm.model", "", "Completion model name")
	flag.IntVar(&cfg.LLMMaxTokens, "llm.maxTokens", 0, "Cap on generated tokens (0 uses the default)")
	flag.Float64Var(&temperature, "llm.temperature", 0, "Decoding temperature (0 uses the default)")
	flag.DurationVar(&cfg.LLMTimeout, "llm.timeout", 0, "Remote extraction timeout (0 uses 60s)")
	flag.BoolVar(&cfg.AutoApply, "auto-apply", false, "Apply extracted tags when posts are saved")
	flag.BoolVar(&cfg.JSONOutput, "json", false, "Print tags as a JSON array")
	flag.BoolVar(&serve, "serve", false, "Run the HTTP suggestion service instead of tagging one document")
	flag.BoolVar(&check, "check", false, "Verify the completion service lists the configured model, then exit")
	flag.StringVar(&cfg.ListenAddr, "listen", "", "Listen address for -serve (default :8080)")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()
	cfg.LLMTemperature = float32(temperature)

	if showVersion {
		fmt.Println(app.VersionString())
		return
	}

	if err := app.LoadEnvFiles(splitList(envFiles)...); err != nil {
		log.Warn().Err(err).Msg("dotenv load failed")
	}
	if err := resolveConfig(&cfg, configPath); err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := modeTag
	switch {
	case check:
		m = modeCheck
	case serve:
		m = modeServe
	}
	if err := run(ctx, cfg, m, os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("run failed")
		if errors.Is(err, app.ErrEmptyContent) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// resolveConfig layers the config file and environment under explicit flags:
// flags > env > file > defaults.
func resolveConfig(cfg *app.Config, configPath string) error {
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", configPath, err)
		}
		var fromFile app.Config
		app.ApplyFileConfig(&fromFile, fc)
		app.ApplyEnvOverrides(&fromFile)
		overlay(cfg, fromFile)
	} else {
		app.ApplyEnvToConfig(cfg)
	}
	return app.ValidateConfig(*cfg)
}

// overlay copies base values into cfg for fields not set by flags.
func overlay(cfg *app.Config, base app.Config) {
	if cfg.Method == "" {
		cfg.Method = base.Method
	}
	if cfg.APIKey == "" {
		cfg.APIKey = base.APIKey
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = base.LLMBaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = base.LLMModel
	}
	if cfg.LLMMaxTokens == 0 {
		cfg.LLMMaxTokens = base.LLMMaxTokens
	}
	if cfg.LLMTemperature == 0 {
		cfg.LLMTemperature = base.LLMTemperature
	}
	if cfg.LLMTimeout == 0 {
		cfg.LLMTimeout = base.LLMTimeout
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = base.ListenAddr
	}
	cfg.AutoApply = cfg.AutoApply || base.AutoApply
	cfg.Verbose = cfg.Verbose || base.Verbose
}

type mode int

const (
	modeTag mode = iota
	modeServe
	modeCheck
)

func run(ctx context.Context, cfg app.Config, m mode, stdin io.Reader, stdout io.Writer) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	switch m {
	case modeServe:
		return a.Serve(ctx)
	case modeCheck:
		if err := a.CheckRemote(ctx); err != nil {
			return fmt.Errorf("check: %w", err)
		}
		_, err := fmt.Fprintln(stdout, "ok")
		return err
	}
	return a.Run(ctx, stdin, stdout)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
