// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-lemmas/lmdb"
	"github.com/ianlewis/go-lemmas/source"
)

// buildConfig holds the settings for the build command. It can be read from a
// YAML file and is overridden by command line flags.
type buildConfig struct {
	Input            string `yaml:"input"`
	Output           string `yaml:"output"`
	Level            int    `yaml:"level"`
	DictZip          bool   `yaml:"dictzip"`
	StripMarkup      bool   `yaml:"strip_markup"`
	ProgressInterval int    `yaml:"progress_interval"`
}

func defaultBuildConfig() *buildConfig {
	return &buildConfig{
		Input:            "-",
		Output:           defaultDictName,
		Level:            lmdb.DefaultOptions.Level,
		ProgressInterval: source.DefaultBuildOptions.ProgressInterval,
	}
}

// loadBuildConfig reads the YAML config file at path over cfg. Keys missing
// from the file keep their current value. Relative paths in the file are
// relative to the file's directory.
func loadBuildConfig(path string, cfg *buildConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: opening config: %w", ErrLmdbutil, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	fileCfg := *cfg
	fileCfg.Input, fileCfg.Output = "", ""
	if err := dec.Decode(&fileCfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: parsing config %q: %w", ErrLmdbutil, path, err)
	}

	dir := filepath.Dir(path)
	if fileCfg.Input != "" {
		cfg.Input = resolvePath(dir, fileCfg.Input)
	}
	if fileCfg.Output != "" {
		cfg.Output = resolvePath(dir, fileCfg.Output)
	}
	cfg.Level = fileCfg.Level
	cfg.DictZip = fileCfg.DictZip
	cfg.StripMarkup = fileCfg.StripMarkup
	cfg.ProgressInterval = fileCfg.ProgressInterval

	return nil
}

func resolvePath(dir, path string) string {
	if path == "-" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
