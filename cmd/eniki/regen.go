package main

import (
	"errors"

	"github.com/spf13/cobra"

	"eniki/internal/api"
	"eniki/internal/config"
)

func newRegenCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		generate    bool
		imageBase64 string
	)

	cmd := &cobra.Command{
		Use:   "regen <id>",
		Short: "Regenerate an entry's illustration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("entry id is required")
			}

			req := api.EntryRegenImageRequest{}
			if generate {
				req.ImageSource = api.ImageSourceGenerated
				req.ImageBase64 = imageBase64
			}

			return withClient(cfg, func(client *api.Client) error {
				entry, err := client.RegenerateImage(cmd.Context(), args[0], req)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(entry)
				}
				return writeEntryDetail(entry)
			})
		},
	}

	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "request a generated illustration")
	cmd.Flags().StringVar(&imageBase64, "image-base64", "", "base64 reference image for generation")
	return cmd
}
