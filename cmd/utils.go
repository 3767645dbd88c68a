package cmd

import (
	"fmt"
	"io"

	"github.com/rubiojr/tracklog/pkg/config"
	"github.com/rubiojr/tracklog/pkg/log"
)

// logger carries the CLI's own messages. Lines tagged "debug" are muted
// unless --debug is given.
var logger = log.For("tracklog")

// loadSettings builds an isolated store from the rule file at configPath,
// writing to out.
func loadSettings(configPath string, out io.Writer) (*log.Settings, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	s := log.NewSettings()
	s.SetOutput(out)
	cfg.Apply(s)
	logger.Tagged("debug", "loaded rules from", configPath, "files:", len(cfg.Files), "tags:", len(cfg.Tags))
	return s, nil
}
