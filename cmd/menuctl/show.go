package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"menugen/internal/app"
	"menugen/internal/menu"

	"github.com/spf13/cobra"
)

var errNoCache = errors.New("no cached menu")

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cached menu document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, closeStore, err := app.OpenStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		return show(cmd.Context(), store, cmd.OutOrStdout())
	},
}

func show(ctx context.Context, store menu.Store, w io.Writer) error {
	doc, ok := store.Load(ctx)
	if !ok || !doc.HasMenu() {
		return errNoCache
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(doc)
}
