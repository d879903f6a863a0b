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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/valpere/listran/internal/language"
	"github.com/valpere/listran/internal/orchestrator"
	"github.com/valpere/listran/internal/pipeline"
	"github.com/valpere/listran/internal/store"
	"github.com/valpere/listran/internal/translator"
)

var (
	inputFile  string
	outputFile string
	sourceLang string
	targetLang string

	layoutInput   bool
	unitsPerSpace float64

	services      []string
	credentials   string
	ollamaURL     string
	ollamaModel   string
	mymemoryEmail string

	dbPath     string
	noCache    bool
	maxRetries int
	workers    int
	validate   bool
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a document file, preserving list structure",
	Long: `Translate extracted document text line by line. Detected list items
(bullets, numbers, letters, roman numerals) are translated content-only
and re-emitted with their original markers and indentation.

Available services (tried in order as fallbacks):
  - google      Google Cloud Translation (requires credentials)
  - mymemory    MyMemory (free, rate-limited)
  - ollama      Ollama LLM (self-hosted; carries list context between items)

Input is plain text by default; --layout switches to JSON Lines records
{"text": ..., "x": ...} produced by a layout extraction stage, where x
is the line's horizontal position in page units.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		fromConfig(cmd, "credentials", "credentials", &credentials)
		fromConfig(cmd, "ollama-url", "ollama.url", &ollamaURL)
		fromConfig(cmd, "ollama-model", "ollama.model", &ollamaModel)
		fromConfig(cmd, "mymemory-email", "mymemory.email", &mymemoryEmail)
		fromConfig(cmd, "db", "db", &dbPath)

		lines, err := readLines(inputFile, layoutInput, unitsPerSpace)
		if err != nil {
			return err
		}

		ctx := context.Background()

		var det *language.Detector
		if sourceLang == "auto" || validate {
			det = language.New()
		}
		if sourceLang == "auto" {
			var sample []string
			for _, l := range lines {
				sample = append(sample, l.Text)
			}
			if detected, ok := det.DetectISO(strings.Join(sample, "\n")); ok {
				sourceLang = detected
				fmt.Fprintf(os.Stderr, "Detected source language: %s\n", sourceLang)
			}
		}

		var db *store.Store
		if !noCache && dbPath != "" {
			db, err = store.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
		}

		serviceList, err := buildServices(services)
		if err != nil {
			return err
		}

		orch := orchestrator.New(serviceList, orchestrator.Config{
			Timeout:     60 * time.Second,
			Workers:     workers,
			MaxAttempts: maxRetries,
		})

		opts := pipeline.Options{
			SourceLang: sourceLang,
			TargetLang: targetLang,
			ServiceCfg: translator.ServiceConfig{
				Credentials: credentials,
				BaseURL:     ollamaURL,
				Model:       ollamaModel,
				Email:       mymemoryEmail,
			},
			Memory:   db,
			Progress: os.Stderr,
		}
		if validate {
			opts.Verifier = det
		}

		out, err := pipeline.New(orch, opts).Run(ctx, lines)
		if err != nil {
			return err
		}

		if dir := filepath.Dir(outputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(outputFile, []byte(strings.Join(out, "\n")+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		fmt.Printf("Successfully translated %s to %s (%d lines)\n", sourceLang, targetLang, len(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate (required)")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for translation (required)")
	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "auto", "Source language code")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (required)")

	translateCmd.Flags().BoolVar(&layoutInput, "layout", false, "Input is layout JSONL with per-line x coordinates")
	translateCmd.Flags().Float64Var(&unitsPerSpace, "space-units", 10, "Page units per leading space for plain-text input")

	translateCmd.Flags().StringSliceVar(&services, "services", []string{"google"}, "Translation services in fallback order (comma-separated)")
	translateCmd.Flags().StringVarP(&credentials, "credentials", "c", "", "Path to Google Cloud credentials")
	translateCmd.Flags().StringVar(&ollamaURL, "ollama-url", "http://localhost:11434", "Ollama base URL")
	translateCmd.Flags().StringVar(&ollamaModel, "ollama-model", "llama3.2", "Ollama model name")
	translateCmd.Flags().StringVar(&mymemoryEmail, "mymemory-email", "", "MyMemory email (for higher limits)")

	translateCmd.Flags().StringVar(&dbPath, "db", "./data/listran.db", "Database path for segment translation memory")
	translateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable the segment translation memory")
	translateCmd.Flags().IntVar(&maxRetries, "max-retries", 3, "Total attempts per service including the first (1 = no retries)")
	translateCmd.Flags().IntVar(&workers, "workers", 4, "Concurrent segment translations")
	translateCmd.Flags().BoolVar(&validate, "validate", false, "Check that translated segments are in the target language")

	translateCmd.MarkFlagRequired("input")
	translateCmd.MarkFlagRequired("output")
	translateCmd.MarkFlagRequired("target")
}
