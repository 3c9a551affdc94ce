package cliflags

import (
	"io/ioutil"
	"os"

	"github.com/pelletier/go-toml"
)

// projectConfig is the optional sysyc.toml shape, grounded directly on the
// teacher's tomlModule pattern (depm/load_mod.go): a small struct decoded
// straight from the file with `toml:"..."` tags, no schema validation
// beyond what go-toml itself does. Any field left unset in the file keeps
// Options' default.
type projectConfig struct {
	In       string `toml:"in"`
	IR       string `toml:"ir-out"`
	Asm      string `toml:"asm-out"`
	Diag     string `toml:"diag-out"`
	WordSize int    `toml:"word-size"`
	Target   string `toml:"target"`
}

// loadConfig reads path if it exists and decodes it as TOML. A missing
// file is not an error: ok is false and cfg is the zero value.
func loadConfig(path string) (projectConfig, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return projectConfig{}, false, nil
		}
		return projectConfig{}, false, err
	}
	defer f.Close()

	buf, err := ioutil.ReadAll(f)
	if err != nil {
		return projectConfig{}, false, err
	}

	var cfg projectConfig
	if err := toml.Unmarshal(buf, &cfg); err != nil {
		return projectConfig{}, false, err
	}
	return cfg, true, nil
}

// applyConfig overlays cfg's set fields onto opts. word-size and target
// are decoded but otherwise unused: this compiler only ever targets 32-bit
// MIPS (§6.5), so there is nothing yet to switch on; the fields exist so a
// project file written against a future multi-target build parses today.
func applyConfig(opts *Options, cfg projectConfig) {
	if cfg.In != "" {
		opts.InPath = cfg.In
	}
	if cfg.IR != "" {
		opts.IRPath = cfg.IR
	}
	if cfg.Asm != "" {
		opts.AsmPath = cfg.Asm
	}
	if cfg.Diag != "" {
		opts.DiagPath = cfg.Diag
	}
}
