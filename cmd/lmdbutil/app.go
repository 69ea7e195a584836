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
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	lemmas "github.com/ianlewis/go-lemmas"
	"github.com/ianlewis/go-lemmas/lmdb"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// defaultDictName is the file name searched for in the data directories.
const defaultDictName = "lemmas.bin"

// ErrLmdbutil is a parent error for all command errors.
var ErrLmdbutil = errors.New("lmdbutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrLmdbutil)

// ErrNoDictionary indicates that no dictionary file was given or found.
var ErrNoDictionary = fmt.Errorf("%w: no dictionary found", ErrLmdbutil)

// ErrNotFound indicates that queried words were not found.
var ErrNotFound = fmt.Errorf("%w: not found", ErrLmdbutil)

var copyrightNames = []string{
	"2021 Google LLC",
	"2024 Ian Lewis",
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// dictFlagName is the flag selecting the dictionary file for commands that
// read one.
const dictFlagName = "dict"

func newDictFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    dictFlagName,
		Usage:   "read the dictionary from `FILE`",
		Aliases: []string{"d"},
	}
}

func newLmdbutilApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Build and query compact lemma dictionaries.",
		Description: strings.Join([]string{
			"Lemma dictionary utility written in Go.",
			"http://github.com/ianlewis/go-lemmas",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "enable debug logging",
				DisableDefaultText: true,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			newBuildCommand(),
			newQueryCommand(),
			newListCommand(),
			newInfoCommand(),
		},
	}
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", c.App.Name, versionInfo.GitVersion)
	b.WriteString("Copyright (c) ")
	b.WriteString(strings.Join(copyrightNames, "\nCopyright (c) "))
	b.WriteString("\n\n")
	b.WriteString(versionInfo.String())
	b.WriteString("\n")

	if _, err := fmt.Fprint(c.App.Writer, b.String()); err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrLmdbutil, err)
	}
	return nil
}

// newLogger returns the command logger. Logs are written to the app's error
// writer.
func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
}

// dictPath returns the dictionary path given by the dict flag or the first
// dictionary found in the data directories.
func dictPath(c *cli.Context) (string, error) {
	if path := c.String(dictFlagName); path != "" {
		return path, nil
	}
	for _, dir := range dataDirs() {
		path := filepath.Join(dir, defaultDictName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNoDictionary
}

// openLemmas opens the dictionary for lookups.
func openLemmas(c *cli.Context) (*lemmas.Lemmas, error) {
	path, err := dictPath(c)
	if err != nil {
		return nil, err
	}
	newLogger(c).Debug("opening dictionary", "path", path)

	l, err := lemmas.Open(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLmdbutil, err)
	}
	return l, nil
}

// readDictionary decodes the dictionary without building a lookup index.
func readDictionary(c *cli.Context) (string, *lmdb.Result, error) {
	path, err := dictPath(c)
	if err != nil {
		return "", nil, err
	}
	newLogger(c).Debug("reading dictionary", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("%w: opening dictionary: %w", ErrLmdbutil, err)
	}
	defer f.Close()

	res, err := lmdb.Decode(f)
	if err != nil {
		return "", nil, fmt.Errorf("%w: reading %q: %w", ErrLmdbutil, path, err)
	}
	return path, res, nil
}
