/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/listran/internal/list"
)

var (
	detectInput      string
	detectLayout     bool
	detectSpaceUnits float64
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show the list structure the detector finds in a file",
	Long: `Run list detection over an input file without translating and print
one row per line: detected kind, marker, nesting level, ordinal index,
and group membership. Useful for checking how a document will be
segmented before spending translation quota on it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := readLines(detectInput, detectLayout, detectSpaceUnits)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LINE\tKIND\tMARKER\tLEVEL\tINDEX\tGROUP\tCONTENT")

		var tracker list.Tracker
		groups := 0
		items := 0
		for i, line := range lines {
			item, ok := list.Detect(line.Text, line.X)
			if !ok {
				tracker.Flush()
				fmt.Fprintf(w, "%d\t-\t\t\t\t\t%s\n", i+1, snippet(line.Text))
				continue
			}

			tracker.Feed(item)
			if len(tracker.Open().Items) == 1 {
				groups++
			}
			items++
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
				i+1, item.Kind, item.Marker, item.Level, item.Index, groups, snippet(item.Content))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%d line(s), %d list item(s) in %d group(s)\n", len(lines), items, groups)
		return nil
	},
}

func snippet(s string) string {
	const max = 40
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringVarP(&detectInput, "input", "i", "", "Input file to inspect (required)")
	detectCmd.Flags().BoolVar(&detectLayout, "layout", false, "Input is layout JSONL with per-line x coordinates")
	detectCmd.Flags().Float64Var(&detectSpaceUnits, "space-units", 10, "Page units per leading space for plain-text input")

	detectCmd.MarkFlagRequired("input")
}
