package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"eniki/internal/config"
	"eniki/internal/genimage"
	"eniki/internal/mediastore"
	"eniki/internal/server"
	"eniki/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the eniki API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening database", "path", cfg.DBPath)
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			media, err := mediastore.NewLocalDir(cfg.UploadDir)
			if err != nil {
				return err
			}

			generator := genimage.NewClient(cfg.GeneratorURL)
			if generator.Configured() {
				logger.Info("image generator enabled", "endpoint", cfg.GeneratorURL)
			}

			srv := server.New(addr, st, media, generator, version, logger)
			return srv.ListenAndServe()
		},
	}
}
