// Package setting is the process-wide settings store (vt_setting style flat
// dotted keys such as "datafeed.username").
package setting

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	KeyDatafeedName = "datafeed.name"
	KeyUsername     = "datafeed.username"
	KeyPassword     = "datafeed.password"
)

// Settings exposes string settings by key.
type Settings interface {
	String(key string) string
}

// Store is a flat key/value Settings implementation.
type Store map[string]string

// Defaults returns the built-in settings.
func Defaults() Store {
	return Store{
		KeyDatafeedName: "tqsdk",
		KeyUsername:     "",
		KeyPassword:     "",
	}
}

func (s Store) String(key string) string {
	return s[key]
}

// Load reads settings from path (JSON or YAML, flat keys) on top of Defaults,
// then applies env overrides. A missing file is not an error.
func Load(path string) (Store, error) {
	s := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read settings %s: %w", path, err)
		default:
			if err := s.merge(data); err != nil {
				return nil, fmt.Errorf("parse settings %s: %w", path, err)
			}
		}
	}
	s.applyEnv()
	return s, nil
}

// merge decodes a flat mapping. YAML is a superset of JSON, so vt_setting.json works too.
// Scalars keep their source text (yes stays "yes", 1e3 stays "1e3"); nested values are rejected.
func (s Store) merge(data []byte) error {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, n := range raw {
		if n.Kind != yaml.ScalarNode {
			return fmt.Errorf("setting %q: want a scalar value (line %d)", k, n.Line)
		}
		if n.Tag == "!!null" {
			s[k] = ""
			continue
		}
		s[k] = n.Value
	}
	return nil
}

// applyEnv maps datafeed.username -> DATAFEED_USERNAME for the datafeed keys.
func (s Store) applyEnv() {
	for _, key := range []string{KeyDatafeedName, KeyUsername, KeyPassword} {
		if v := os.Getenv(envName(key)); v != "" {
			s[key] = v
		}
	}
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
