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

	"github.com/gobwas/glob"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

func newListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "list dictionary entries in file order",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			newDictFlag(),
			&cli.StringFlag{
				Name:    "filter",
				Usage:   "only list words matching glob `PATTERN`",
				Aliases: []string{"f"},
			},
			&cli.IntFlag{
				Name:    "limit",
				Usage:   "list at most `N` entries (0 for no limit)",
				Aliases: []string{"n"},
			},
		},
		Action: runList,
	}
}

func runList(c *cli.Context) error {
	if c.Args().Present() {
		return fmt.Errorf("%w: unexpected arguments: %v", ErrFlagParse, c.Args().Slice())
	}
	limit := c.Int("limit")
	if limit < 0 {
		return fmt.Errorf("%w: invalid limit: %d", ErrFlagParse, limit)
	}

	var g glob.Glob
	if pattern := c.String("filter"); pattern != "" {
		var err error
		g, err = glob.Compile(pattern)
		if err != nil {
			return fmt.Errorf("%w: invalid filter %q: %w", ErrFlagParse, pattern, err)
		}
	}

	_, res, err := readDictionary(c)
	if err != nil {
		return err
	}

	tbl := table.New("Word", "Lemma", "Grammemes").WithWriter(c.App.Writer)
	n := 0
	for w, e := range res.Dictionary.All() {
		if limit > 0 && n >= limit {
			break
		}
		if g != nil && !g.Match(w) {
			continue
		}
		tbl.AddRow(e.Word, e.Lemma, strings.Join(e.Grammemes, ","))
		n++
	}
	tbl.Print()

	return nil
}
