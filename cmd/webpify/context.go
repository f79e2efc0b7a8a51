package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"webpify/internal/config"
)

type commandContext struct {
	configFlag     *string
	inputFlag      *string
	outputFlag     *string
	qualityFlag    *int
	noMetadataFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, inputFlag, outputFlag *string, qualityFlag *int, noMetadataFlag *bool) *commandContext {
	return &commandContext{
		configFlag:     configFlag,
		inputFlag:      inputFlag,
		outputFlag:     outputFlag,
		qualityFlag:    qualityFlag,
		noMetadataFlag: noMetadataFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyFlagOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// applyFlagOverrides layers command-line flags over the loaded file, then
// re-validates because flags can introduce the same mistakes a file can.
func (c *commandContext) applyFlagOverrides(cfg *config.Config) error {
	if c.inputFlag != nil && strings.TrimSpace(*c.inputFlag) != "" {
		expanded, err := config.ExpandPath(strings.TrimSpace(*c.inputFlag))
		if err != nil {
			return fmt.Errorf("resolve --input: %w", err)
		}
		cfg.Paths.InputDir = expanded
		// The default output dir follows the input dir unless --output pins it.
		if c.outputFlag == nil || strings.TrimSpace(*c.outputFlag) == "" {
			cfg.Paths.OutputDir = filepath.Join(expanded, "webp_output")
		}
	}
	if c.outputFlag != nil && strings.TrimSpace(*c.outputFlag) != "" {
		out := strings.TrimSpace(*c.outputFlag)
		if !filepath.IsAbs(out) && !strings.HasPrefix(out, "~") {
			out = filepath.Join(cfg.Paths.InputDir, out)
		}
		expanded, err := config.ExpandPath(out)
		if err != nil {
			return fmt.Errorf("resolve --output: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	if c.qualityFlag != nil && *c.qualityFlag >= 0 {
		cfg.Conversion.Quality = *c.qualityFlag
	}
	if c.noMetadataFlag != nil && *c.noMetadataFlag {
		cfg.Conversion.SkipMetadata = true
	}
	return cfg.Validate()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
