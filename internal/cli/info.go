/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"quotecard/internal/config"
	"quotecard/internal/palette"
	"quotecard/internal/version"
)

func (c *CLI) schemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List the color schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printTitle(c.Out, "Color schemes:")
			for _, s := range palette.Schemes() {
				g, err := palette.Scheme(s.ID)
				if err != nil {
					return err
				}
				printMenuItem(c.Out, s.ID, s.Name, swatch(g))
			}
			return nil
		},
	}
}

func (c *CLI) fontsCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "fonts",
		Short: "List the selectable fonts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("fonts") {
				job, err := config.Load(c.configPath)
				if err != nil {
					return err
				}
				dir = job.FontsDir
			}
			fonts, err := fontChoices(dir)
			if err != nil {
				return err
			}
			printTitle(c.Out, "Fonts:")
			for i, f := range fonts {
				printMenuItem(c.Out, i, fontLabel(f))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "fonts", "", "fonts folder")
	return cmd
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(c.Out, "quotecard %s\n", version.String())
		},
	}
}
