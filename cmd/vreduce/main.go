// Copyright 2025 go-highway Authors
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

// Command vreduce inspects and exercises the reduction kernels: it reports
// the detected CPU and bound variants, cross-checks every variant against a
// float64 reference and times them.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type cli struct {
	logLevel  string
	logFormat string
	logger    *logrus.Logger
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{logger: logrus.New()}

	rootCmd := &cobra.Command{
		Use:           "vreduce",
		Short:         "Vectorized dot product and squared distance kernels",
		Long:          "Reports CPU dispatch, verifies kernel variants against a float64 reference and benchmarks them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setupLogger(stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(cpuinfoCmd())
	rootCmd.AddCommand(verifyCmd(c))
	rootCmd.AddCommand(benchCmd(c))
	return rootCmd
}

func (c *cli) setupLogger(out io.Writer) error {
	level, err := logrus.ParseLevel(c.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	c.logger.SetLevel(level)
	c.logger.SetOutput(out)

	switch c.logFormat {
	case "text":
		c.logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		c.logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid --log-format %q (want text or json)", c.logFormat)
	}
	return nil
}
