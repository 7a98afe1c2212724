package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"captions/internal/api"
	"captions/internal/cueexport"
	"captions/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the caption parser over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if strings.TrimSpace(bind) == "" {
				bind = cfg.API.Bind
			}
			format, err := cueexport.ParseFormat(cfg.Export.DefaultFormat)
			if err != nil {
				return err
			}

			store, err := ctx.openCache(false)
			if err != nil {
				return fmt.Errorf("open cue cache: %w", err)
			}
			loader, err := ctx.newLoader(store, 0)
			if err != nil {
				return err
			}
			opts := api.Options{
				Loader:          loader,
				Logger:          logger,
				Token:           cfg.API.Token,
				MaxBodyBytes:    cfg.API.MaxBodyBytes,
				DefaultFormat:   format,
				FallbackSeconds: cfg.Export.FallbackDisplaySeconds,
			}
			if store != nil {
				defer store.Close()
				opts.Cache = store
			}
			if opts.Token == "" {
				logger.Warn("api token not configured; requests are unauthenticated",
					logging.String(logging.FieldEventType, "api_unauthenticated"),
					logging.String(logging.FieldErrorHint, "set api.token or CAPTIONS_API_TOKEN"),
				)
			}

			server, err := api.NewServer(opts)
			if err != nil {
				return err
			}
			return server.ListenAndServe(cmd.Context(), bind)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides api.bind)")
	return cmd
}
