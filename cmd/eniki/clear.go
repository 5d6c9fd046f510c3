package main

import (
	"errors"

	"github.com/spf13/cobra"

	"eniki/internal/api"
	"eniki/internal/config"
)

func newClearCmd(cfg *config.Config) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all diary entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("refusing to delete all entries without --force")
			}

			return withClient(cfg, func(client *api.Client) error {
				if err := client.ClearEntries(cmd.Context()); err != nil {
					return err
				}
				return writePlain("cleared\n")
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm deleting every entry")
	return cmd
}
