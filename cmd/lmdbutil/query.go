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
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-lemmas/dict"
)

func newQueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "look up word forms",
		ArgsUsage: "WORD...",
		Flags: []cli.Flag{
			newDictFlag(),
			&cli.BoolFlag{
				Name:               "prefix",
				Usage:              "match words starting with each query",
				Aliases:            []string{"p"},
				DisableDefaultText: true,
			},
		},
		Action: runQuery,
	}
}

func runQuery(c *cli.Context) error {
	if !c.Args().Present() {
		return fmt.Errorf("%w: missing WORD", ErrFlagParse)
	}

	l, err := openLemmas(c)
	if err != nil {
		return err
	}

	tbl := table.New("Word", "Lemma", "Grammemes").WithWriter(c.App.Writer)
	var missing []string
	for _, q := range c.Args().Slice() {
		var entries []*dict.Entry
		if c.Bool("prefix") {
			entries, err = l.Prefix(q)
		} else {
			entries, err = l.Lookup(q)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLmdbutil, err)
		}
		if len(entries) == 0 {
			missing = append(missing, q)
			continue
		}
		for _, e := range entries {
			tbl.AddRow(e.Word, e.Lemma, strings.Join(e.Grammemes, ","))
		}
	}
	tbl.Print()

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, strings.Join(missing, ", "))
	}
	return nil
}
