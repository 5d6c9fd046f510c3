package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"eniki/internal/api"
	"eniki/internal/config"
)

func newAvatarCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avatar",
		Short: "Manage the diary avatar",
	}

	cmd.AddCommand(
		newAvatarSetCmd(cfg, jsonOutput),
		newAvatarShowCmd(cfg, jsonOutput),
		newAvatarClearCmd(cfg, jsonOutput),
	)
	return cmd
}

func newAvatarSetCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "set <file>",
		Short: "Upload avatar media (gif or mp4)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("media file is required")
			}

			fileType, err := mediaKindFromPath(args[0])
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			displayName := name
			if displayName == "" {
				base := filepath.Base(args[0])
				displayName = strings.TrimSuffix(base, filepath.Ext(base))
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.UploadAvatar(cmd.Context(), f, displayName, fileType)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("%s\n", resp.FileURL)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "avatar display name (default: file name)")
	return cmd
}

func newAvatarShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current avatar",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				avatar, err := client.GetAvatar(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(avatar)
				}
				lines := []string{
					fmt.Sprintf("name: %s", avatar.DisplayName),
					fmt.Sprintf("file_name: %s", avatar.FileName),
					fmt.Sprintf("file_url: %s", avatar.FileURL),
					fmt.Sprintf("media_kind: %s", avatar.MediaKind),
					fmt.Sprintf("updated_at: %s", formatTime(avatar.UpdatedAt)),
				}
				return writePlain("%s\n", strings.Join(lines, "\n"))
			})
		},
	}
}

func newAvatarClearCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the current avatar",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				avatar, err := client.GetAvatar(cmd.Context())
				if err != nil {
					if api.IsNotFound(err) {
						return writePlain("no avatar set\n")
					}
					return err
				}

				resp, err := client.DeleteAvatar(cmd.Context(), avatar.FileName)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("%s\n", resp.Message)
			})
		},
	}
}

func mediaKindFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return "gif", nil
	case ".mp4":
		return "mp4", nil
	default:
		return "", fmt.Errorf("unsupported media file %q (want .gif or .mp4)", filepath.Base(path))
	}
}
