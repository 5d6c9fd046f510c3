package main

import (
	"errors"

	"github.com/spf13/cobra"

	"eniki/internal/api"
	"eniki/internal/config"
)

func newDeleteCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a diary entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("entry id is required")
			}

			return withClient(cfg, func(client *api.Client) error {
				if err := client.DeleteEntry(cmd.Context(), args[0]); err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(map[string]string{"id": args[0]})
				}
				return writePlain("%s\n", args[0])
			})
		},
	}
}
