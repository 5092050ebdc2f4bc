// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Session SessionConfig `toml:"session"`
}

// SessionConfig maps session-related settings.
type SessionConfig struct {
	List       *string   `toml:"list"`
	Lists      *[]string `toml:"lists"`
	Strategy   *string   `toml:"strategy"`
	MinLetters *int      `toml:"min-letters"`
	ShapeMap   *string   `toml:"shape-map"`
	SearchMode *string   `toml:"search-mode"`
	Positions  *[]int    `toml:"positions"`
	Disabled   *[]string `toml:"disabled"`
	LogLevel   *string   `toml:"log-level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Template is written by the config command when no file exists yet.
const Template = `# wordsieve configuration

[session]
# list = "en"
# lists = ["/usr/share/dict/words"]
# strategy = "max-variance"   # min-observed, max-variance, filtering-potential, category-coverage
# min-letters = 10
# shape-map = "two"           # two, three
# search-mode = "contains"    # contains, prefix-overlap
# positions = [1, 2, 3]
# disabled = []               # search, adjacent-consonants, positional, vowels, shape
# log-level = "warn"
`
