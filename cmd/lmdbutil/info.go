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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

func newInfoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "print dictionary information",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			newDictFlag(),
			&cli.BoolFlag{
				Name:               "grammemes",
				Usage:              "print the grammeme table",
				Aliases:            []string{"g"},
				DisableDefaultText: true,
			},
		},
		Action: runInfo,
	}
}

func runInfo(c *cli.Context) error {
	if c.Args().Present() {
		return fmt.Errorf("%w: unexpected arguments: %v", ErrFlagParse, c.Args().Slice())
	}

	path, res, err := readDictionary(c)
	if err != nil {
		return err
	}

	tbl := table.New("Field", "Value").WithWriter(c.App.Writer)
	tbl.AddRow("Path", path)
	tbl.AddRow("Entries", res.Dictionary.Len())
	tbl.AddRow("Grammemes", len(res.Grammemes))
	tbl.Print()

	if !c.Bool("grammemes") {
		return nil
	}

	// Count the entries referencing each grammeme.
	counts := make(map[string]int, len(res.Grammemes))
	for _, e := range res.Dictionary.All() {
		for _, g := range e.Grammemes {
			counts[g]++
		}
	}

	fmt.Fprintln(c.App.Writer)
	gtbl := table.New("Index", "Grammeme", "Entries").WithWriter(c.App.Writer)
	for i, g := range res.Grammemes {
		gtbl.AddRow(i, g, counts[g])
	}
	gtbl.Print()

	return nil
}
