/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/orien/stackmanager/internal/config"
	"github.com/orien/stackmanager/internal/model"
	"gopkg.in/yaml.v3"
)

// Provider implements config.ConfigProvider by reading a YAML file, or
// every *.yaml and *.yml file of a directory
type Provider struct {
	path      string
	baseDir   string
	rawConfig *Config
	validator *validator.Validate
}

// NewProvider creates a new file-based ConfigProvider for the given path
func NewProvider(path string) *Provider {
	return &Provider{
		path:      path,
		validator: validator.New(),
	}
}

// LoadConfig loads, validates and resolves the configuration
func (fp *Provider) LoadConfig(ctx context.Context) (*config.Config, error) {
	if err := fp.Validate(); err != nil {
		return nil, err
	}

	interval := config.DefaultMinimumUpdateInterval
	if fp.rawConfig.MinimumUpdateInterval != nil {
		interval = time.Duration(*fp.rawConfig.MinimumUpdateInterval)
	}

	cfg := &config.Config{
		Bucket:                fp.rawConfig.Bucket,
		Region:                fp.rawConfig.Region,
		TemplatesDir:          fp.resolveTemplatesDir(),
		MinimumUpdateInterval: interval,
		Templates:             make(map[string]*config.TemplateConfig, len(fp.rawConfig.Templates)),
	}
	for name, rawTemplate := range fp.rawConfig.Templates {
		cfg.Templates[name] = rawTemplate.ToTemplateConfig(name)
	}

	return cfg, nil
}

// GetTemplate returns the configuration of a single template
func (fp *Provider) GetTemplate(name string) (*config.TemplateConfig, error) {
	if err := fp.ensureLoaded(); err != nil {
		return nil, err
	}

	rawTemplate, exists := fp.rawConfig.Templates[name]
	if !exists || rawTemplate == nil {
		return nil, fmt.Errorf("template '%s' not found in configuration", name)
	}

	return rawTemplate.ToTemplateConfig(name), nil
}

// ListTemplates returns all configured template names, sorted
func (fp *Provider) ListTemplates() ([]string, error) {
	if err := fp.ensureLoaded(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(fp.rawConfig.Templates))
	for name := range fp.rawConfig.Templates {
		names = append(names, name)
	}
	slices.Sort(names)

	return names, nil
}

// Validate checks the configuration for consistency and errors
func (fp *Provider) Validate() error {
	if err := fp.ensureLoaded(); err != nil {
		return err
	}

	if err := fp.validator.Struct(fp.rawConfig); err != nil {
		return fmt.Errorf("invalid configuration in '%s': %w", fp.path, err)
	}

	for _, name := range sortedKeys(fp.rawConfig.Templates) {
		rawTemplate := fp.rawConfig.Templates[name]
		if len(rawTemplate.Environments) == 0 {
			return fmt.Errorf("template '%s' has no environments", name)
		}
		if _, exists := rawTemplate.ScalingProfiles[model.DefaultScalingProfile]; !exists {
			return fmt.Errorf("template '%s' has no '%s' scaling profile", name, model.DefaultScalingProfile)
		}
		for _, env := range sortedKeys(rawTemplate.Environments) {
			if strings.TrimSpace(env) == "" {
				return fmt.Errorf("template '%s' has an environment with an empty name", name)
			}
		}
	}

	if fp.rawConfig.MinimumUpdateInterval != nil && *fp.rawConfig.MinimumUpdateInterval < 0 {
		return fmt.Errorf("minimum_update_interval must not be negative")
	}

	return nil
}

// ensureLoaded loads the raw configuration from disk if not already loaded
func (fp *Provider) ensureLoaded() error {
	if fp.rawConfig != nil {
		return nil
	}

	info, err := os.Stat(fp.path)
	if err != nil {
		return fmt.Errorf("failed to read config '%s': %w", fp.path, err)
	}

	files := []string{fp.path}
	fp.baseDir = filepath.Dir(fp.path)
	if info.IsDir() {
		files, err = configFiles(fp.path)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no YAML config files found in '%s'", fp.path)
		}
		fp.baseDir = fp.path
	}

	merged := &Config{Templates: make(map[string]*Template)}
	for _, filename := range files {
		rawConfig, err := readConfigFile(filename)
		if err != nil {
			return err
		}
		mergeConfig(merged, rawConfig)
	}

	fp.rawConfig = merged
	return nil
}

// configFiles lists the YAML files of dir in lexical order
func configFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory '%s': %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	slices.Sort(files)

	return files, nil
}

func readConfigFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filename, err)
	}

	var rawConfig Config
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config file '%s': %w", filename, err)
	}

	return &rawConfig, nil
}

// mergeConfig folds src into dst. Values already set in dst win, so earlier
// files take precedence over later ones.
func mergeConfig(dst, src *Config) {
	if dst.Bucket == "" {
		dst.Bucket = src.Bucket
	}
	if dst.Region == "" {
		dst.Region = src.Region
	}
	if dst.TemplatesDir == "" {
		dst.TemplatesDir = src.TemplatesDir
	}
	if dst.MinimumUpdateInterval == nil {
		dst.MinimumUpdateInterval = src.MinimumUpdateInterval
	}
	for name, rawTemplate := range src.Templates {
		if _, exists := dst.Templates[name]; !exists {
			dst.Templates[name] = rawTemplate
		}
	}
}

// resolveTemplatesDir resolves the templates directory relative to the config location
func (fp *Provider) resolveTemplatesDir() string {
	dir := fp.rawConfig.TemplatesDir
	if dir == "" {
		dir = "templates"
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(fp.baseDir, dir)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
