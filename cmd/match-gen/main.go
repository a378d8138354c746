// Copyright 2023 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "match-gen",
		Usage: "Utility for working with big/little matchings",
		Commands: []*cli.Command{
			solveCmd,
			checkCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

var solveCmd = &cli.Command{
	Name:    "solve",
	Usage:   "Solve a matching problem",
	Aliases: []string{"s"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "problem",
			Required: true,
			Usage:    "specify the input problem.json",
		},
		&cli.StringFlag{
			Name:     "matching",
			Required: true,
			Usage:    "specify the output matching.json",
		},
		&cli.Float64Flag{
			Name:     "weight",
			Required: false,
			Value:    -1.0,
			Usage:    "override the preference weight (0.0-1.0)",
		},
		&cli.BoolFlag{
			Name:     "vv",
			Required: false,
			Usage:    "verbose output",
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			problemFile  = ctx.String("problem")
			matchingFile = ctx.String("matching")
			weight       = ctx.Float64("weight")
			verbose      = ctx.Bool("vv")
		)
		var weightp *float64
		if weight >= 0.0 {
			if weight > 1.0 {
				return fmt.Errorf("invalid weight")
			}
			weightp = &weight
		}
		return doSolve(problemFile, matchingFile, weightp, verbose)
	},
}

var checkCmd = &cli.Command{
	Name:    "check",
	Usage:   "Check a matching for blocking pairs",
	Aliases: []string{"c"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "problem",
			Required: true,
			Usage:    "specify the input problem.json",
		},
		&cli.StringFlag{
			Name:     "matching",
			Required: true,
			Usage:    "specify the input matching.json",
		},
	},
	Action: func(ctx *cli.Context) error {
		return doCheck(ctx.String("problem"), ctx.String("matching"))
	},
}
