package main

import (
	"github.com/spf13/cobra"

	"eniki/internal/api"
	"eniki/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show diary database info",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}
				resp.DBPath = cfg.DBPath

				if *jsonOutput {
					return writeJSON(resp)
				}

				_ = writePlain("version: %s\n", resp.Version)
				_ = writePlain("db_path: %s\n", resp.DBPath)
				_ = writePlain("schema_version: %d\n", resp.SchemaVersion)
				_ = writePlain("entry_count: %d\n", resp.EntryCount)
				_ = writePlain("has_avatar: %t\n", resp.HasAvatar)
				_ = writePlain("generator_configured: %t\n", resp.Generator)
				return nil
			})
		},
	}
}
