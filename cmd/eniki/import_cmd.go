package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eniki/internal/api"
	"eniki/internal/config"
)

func newImportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		inputPath string
		dryRun    bool
		dedupe    string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import entries from an NDJSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" {
				return errors.New("--input is required")
			}

			return withClient(cfg, func(client *api.Client) error {
				f, err := os.Open(inputPath)
				if err != nil {
					return err
				}
				defer f.Close()

				var records []api.EntryImportRecord
				scanner := bufio.NewScanner(f)
				scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)
				lineNum := 0
				for scanner.Scan() {
					lineNum++
					line := scanner.Bytes()
					if len(line) == 0 {
						continue
					}
					var rec api.EntryImportRecord
					if err := json.Unmarshal(line, &rec); err != nil {
						return fmt.Errorf("line %d: %w", lineNum, err)
					}
					records = append(records, rec)
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				if len(records) == 0 {
					return errors.New("no records found in input file")
				}

				resp, err := client.Import(cmd.Context(), api.ImportRequest{
					Entries: records,
					DryRun:  dryRun,
					Dedupe:  dedupe,
				})
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("created: %d, updated: %d, skipped: %d\n",
					resp.Created, resp.Updated, resp.Skipped)
			})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input NDJSON file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview without making changes")
	cmd.Flags().StringVar(&dedupe, "dedupe", "skip", "dedupe mode: skip|overwrite|error")

	return cmd
}
