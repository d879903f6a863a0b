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
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/listran/internal/pipeline"
	"github.com/valpere/listran/internal/translator"
)

// buildServices constructs the translation backends named on the
// command line, in fallback order.
func buildServices(serviceNames []string) ([]translator.Service, error) {
	var list []translator.Service
	for _, name := range serviceNames {
		switch name {
		case "google":
			list = append(list, translator.NewGoogleService())
		case "mymemory":
			list = append(list, translator.NewMyMemoryService())
		case "ollama":
			list = append(list, translator.NewOllamaService())
		default:
			fmt.Fprintf(os.Stderr, "Unknown service: %s, skipping\n", name)
		}
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no valid services configured")
	}
	return list, nil
}

// fromConfig fills s from the viper key when the flag was not set
// explicitly, so config file and LISTRAN_* env act as defaults.
func fromConfig(cmd *cobra.Command, flag, key string, s *string) {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		*s = viper.GetString(key)
	}
}

// readLines loads the document as (text, x) pairs. Layout input is JSON
// Lines with {"text": ..., "x": ...} records straight from the
// extraction layer; plain text input infers x from leading indentation
// at unitsPerSpace page units per space (tabs count as four).
func readLines(path string, layout bool, unitsPerSpace float64) ([]pipeline.Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	var lines []pipeline.Line
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		raw := scanner.Text()
		if layout {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			var line pipeline.Line
			if err := json.Unmarshal([]byte(raw), &line); err != nil {
				return nil, fmt.Errorf("bad layout record %q: %w", raw, err)
			}
			lines = append(lines, line)
			continue
		}
		lines = append(lines, pipeline.Line{
			Text: raw,
			X:    indentWidth(raw) * unitsPerSpace,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return lines, nil
}

// indentWidth counts the leading whitespace of s in space equivalents.
func indentWidth(s string) float64 {
	width := 0.0
	for _, r := range s {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}
