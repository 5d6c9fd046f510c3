package main

import (
	"sort"

	"github.com/spf13/cobra"

	"eniki/internal/api"
	"eniki/internal/config"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List diary entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				entries, err := client.ListEntries(cmd.Context())
				if err != nil {
					return err
				}

				sort.Slice(entries, func(i, j int) bool {
					return entries[i].CreatedAt.After(entries[j].CreatedAt)
				})
				if limit > 0 && len(entries) > limit {
					entries = entries[:limit]
				}

				if *jsonOutput {
					return writeJSON(entries)
				}
				return writeEntryList(entries)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum entries to show (0 = all)")
	return cmd
}
