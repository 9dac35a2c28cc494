// Package taulcfg loads the TOML configuration file that cmd/taulc is given
// with --config: a grammar path, which cache directory to use, and default
// lexer behavior, following the same toml.Unmarshal-into-a-struct idiom as the
// teacher's internal/tqw world-file loader.
package taulcfg

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/taul/internal/taulerr"
)

// Config is the top-level shape of a config file.
type Config struct {
	// Grammar is the path of a .taul grammar file, which Load resolves
	// against the config file's directory if not absolute. cmd/taulc does
	// not read it: it loads the grammar file named on its command line.
	Grammar string `toml:"grammar"`

	Cache CacheConfig `toml:"cache"`
	Lex   LexConfig   `toml:"lex"`
}

// CacheConfig controls the compiled-grammar cache (internal/taulcache).
type CacheConfig struct {
	// Dir is where cached compiled grammars are stored. Empty disables
	// caching.
	Dir string `toml:"dir"`
}

// LexConfig controls default tokenizer behavior.
type LexConfig struct {
	// CutSkipTokens mirrors lex.Lexer.CutSkipTokens.
	CutSkipTokens bool `toml:"cut_skip_tokens"`
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	return Config{
		Lex: LexConfig{CutSkipTokens: true},
	}
}

// Load reads and parses the TOML config file at path. Relative paths inside
// the config (Grammar, Cache.Dir) are resolved against path's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, taulerr.Wrap(fmt.Errorf("reading %q: %w", path, err), taulerr.ErrConfig)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, taulerr.Wrap(fmt.Errorf("parsing %q: %w", path, err), taulerr.ErrConfig)
	}

	dir := filepath.Dir(path)
	if cfg.Grammar != "" && !filepath.IsAbs(cfg.Grammar) {
		cfg.Grammar = filepath.Join(dir, cfg.Grammar)
	}
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(dir, cfg.Cache.Dir)
	}

	return cfg, nil
}
