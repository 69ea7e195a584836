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
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	lemmas "github.com/ianlewis/go-lemmas"
	"github.com/ianlewis/go-lemmas/source"
)

func newBuildCommand() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "build a dictionary from tab separated triples",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read build settings from YAML `FILE`",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:    "input",
				Usage:   "read triples from `FILE` (- for stdin)",
				Aliases: []string{"i"},
				Value:   "-",
			},
			&cli.StringFlag{
				Name:    "output",
				Usage:   "write the dictionary to `FILE`",
				Aliases: []string{"o"},
				Value:   defaultDictName,
			},
			&cli.IntFlag{
				Name:  "level",
				Usage: "deflate compression `LEVEL` (1-9)",
				Value: defaultBuildConfig().Level,
			},
			&cli.BoolFlag{
				Name:               "dictzip",
				Usage:              "write the dictionary in dictzip format",
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "strip-markup",
				Usage:              "strip HTML markup from input fields",
				DisableDefaultText: true,
			},
		},
		Action: runBuild,
	}
}

// buildConfigFromContext merges the defaults, the config file, and the flags
// in that order.
func buildConfigFromContext(c *cli.Context) (*buildConfig, error) {
	cfg := defaultBuildConfig()
	if path := c.String("config"); path != "" {
		if err := loadBuildConfig(path, cfg); err != nil {
			return nil, err
		}
	}

	if c.IsSet("input") {
		cfg.Input = c.String("input")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("level") {
		cfg.Level = c.Int("level")
	}
	if c.IsSet("dictzip") {
		cfg.DictZip = c.Bool("dictzip")
	}
	if c.IsSet("strip-markup") {
		cfg.StripMarkup = c.Bool("strip-markup")
	}

	return cfg, nil
}

func runBuild(c *cli.Context) error {
	if c.Args().Present() {
		return fmt.Errorf("%w: unexpected arguments: %v", ErrFlagParse, c.Args().Slice())
	}

	cfg, err := buildConfigFromContext(c)
	if err != nil {
		return err
	}
	log := newLogger(c)

	scanOpts := &source.ScannerOptions{
		StripMarkup: cfg.StripMarkup,
	}
	var s *source.Scanner
	if cfg.Input == "-" {
		s = source.NewScanner(io.NopCloser(c.App.Reader), scanOpts)
	} else {
		s, err = source.Open(cfg.Input, scanOpts)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLmdbutil, err)
		}
	}
	defer s.Close()

	log.Info("reading triples", "input", cfg.Input)
	d, err := source.Build(s, &source.BuildOptions{
		ProgressInterval: cfg.ProgressInterval,
		Progress: func(read, unique int) {
			log.Info("processed triples", "read", read, "unique", unique)
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLmdbutil, err)
	}

	log.Debug("writing dictionary",
		"output", cfg.Output,
		"level", cfg.Level,
		"dictzip", cfg.DictZip,
	)
	if err := lemmas.WriteFile(cfg.Output, d, &lemmas.WriteOptions{
		Level:   cfg.Level,
		DictZip: cfg.DictZip,
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrLmdbutil, err)
	}

	log.Info("wrote dictionary", "output", cfg.Output, "entries", d.Len())
	return nil
}
