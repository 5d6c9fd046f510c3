package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"eniki/internal/api"
	"eniki/internal/config"
)

type writeCmdOptions struct {
	generate    bool
	imageBase64 string
	filePath    string
}

func newWriteCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	opts := &writeCmdOptions{}
	cmd := &cobra.Command{
		Use:   "write <text>",
		Short: "Write a new diary entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, cfg, opts, jsonOutput, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.generate, "generate", "g", false, "request a generated illustration")
	cmd.Flags().StringVar(&opts.imageBase64, "image-base64", "", "base64 reference image for generation")
	cmd.Flags().StringVarP(&opts.filePath, "file", "f", "", "markdown file for batch write")
	return cmd
}

func runWrite(cmd *cobra.Command, cfg *config.Config, opts *writeCmdOptions, jsonOutput *bool, args []string) error {
	return withClient(cfg, func(client *api.Client) error {
		if opts.filePath != "" {
			return runWriteFromFile(cmd.Context(), client, opts.filePath, jsonOutput)
		}

		if len(args) == 0 {
			return errors.New("text is required")
		}

		req := api.EntryCreateRequest{Text: strings.Join(args, " ")}
		if opts.generate {
			req.ImageSource = api.ImageSourceGenerated
			req.ImageBase64 = opts.imageBase64
		}

		resp, err := client.CreateEntry(cmd.Context(), req)
		if err != nil {
			return err
		}
		if *jsonOutput {
			return writeJSON(resp)
		}
		return writePlain("%s\n", resp.ID)
	})
}

func runWriteFromFile(ctx context.Context, client *api.Client, filePath string, jsonOutput *bool) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	defaults, items, err := parseMarkdown(string(data))
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no list items found in %s", filePath)
	}

	responses := make([]api.EntryResponse, 0, len(items))
	for i, item := range items {
		req := defaults
		req.Text = item
		resp, err := client.CreateEntry(ctx, req)
		if err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
		responses = append(responses, resp)
	}

	if *jsonOutput {
		return writeJSON(responses)
	}
	for _, resp := range responses {
		if err := writePlain("%s\n", resp.ID); err != nil {
			return err
		}
	}
	return nil
}
