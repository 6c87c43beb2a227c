package tagger

import (
	"errors"
	"fmt"
	"strings"
)

// Method selects the extraction strategy.
type Method string

const (
	// MethodBuiltin ranks keywords locally by frequency.
	MethodBuiltin Method = "builtin"
	// MethodRemote delegates extraction to a completion service.
	MethodRemote Method = "remote"
)

// ErrUnsupportedMethod is returned by ParseMethod for unknown selectors.
var ErrUnsupportedMethod = errors.New("unsupported extraction method")

// ParseMethod validates a selector string. Empty selects MethodBuiltin and
// the historical "chatgpt" selector maps to MethodRemote. Anything else is
// returned as-is together with ErrUnsupportedMethod, so a caller that still
// passes it on gets an empty result rather than a crash.
func ParseMethod(s string) (Method, error) {
	switch m := strings.ToLower(strings.TrimSpace(s)); m {
	case "", string(MethodBuiltin):
		return MethodBuiltin, nil
	case string(MethodRemote), "chatgpt":
		return MethodRemote, nil
	default:
		return Method(m), fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}
}

// Config is the per-call extraction configuration. It is immutable once built
// and is passed by value; the dispatcher never reads settings on its own.
type Config struct {
	method    Method
	apiKey    string
	autoApply bool
}

// NewConfig builds a Config. The credential is trimmed of surrounding space.
func NewConfig(method Method, apiKey string, autoApply bool) Config {
	return Config{method: method, apiKey: strings.TrimSpace(apiKey), autoApply: autoApply}
}

func (c Config) Method() Method { return c.method }
func (c Config) APIKey() string { return c.apiKey }
func (c Config) AutoApply() bool { return c.autoApply }
func (c Config) HasCredential() bool { return c.apiKey != "" }

// String redacts the credential.
func (c Config) String() string {
	key := "unset"
	if c.HasCredential() {
		key = "set"
	}
	return fmt.Sprintf("method=%s apiKey=%s autoApply=%t", c.method, key, c.autoApply)
}
