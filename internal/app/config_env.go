package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Method == "" {
		cfg.Method = os.Getenv("AUTOTAGS_METHOD")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("LLM_API_KEY")
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = os.Getenv("LISTEN_ADDR")
	}
	if cfg.LLMMaxTokens == 0 {
		if n, ok := envInt("LLM_MAX_TOKENS"); ok {
			cfg.LLMMaxTokens = n
		}
	}
	if cfg.LLMTimeout == 0 {
		if d, ok := envDuration("LLM_TIMEOUT"); ok {
			cfg.LLMTimeout = d
		}
	}
	if !cfg.AutoApply {
		if v, ok := envBool("AUTOTAGS_AUTO_APPLY"); ok {
			cfg.AutoApply = v
		}
	}
	if !cfg.Verbose {
		if v, ok := envBool("VERBOSE"); ok {
			cfg.Verbose = v
		}
	}
}

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when they are set. This lets env take precedence over a config file while
// flags remain highest precedence.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}
	if v := os.Getenv("AUTOTAGS_METHOD"); v != "" {
		cfg.Method = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLMBaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLMModel = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if n, ok := envInt("LLM_MAX_TOKENS"); ok {
		cfg.LLMMaxTokens = n
	}
	if d, ok := envDuration("LLM_TIMEOUT"); ok {
		cfg.LLMTimeout = d
	}
	if v, ok := envBool("AUTOTAGS_AUTO_APPLY"); ok {
		cfg.AutoApply = v
	}
	if v, ok := envBool("VERBOSE"); ok {
		cfg.Verbose = v
	}
}

func envInt(key string) (int, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func envDuration(key string) (time.Duration, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

// envBool understands 1/true/yes/on and 0/false/no/off; anything else is unset.
func envBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
