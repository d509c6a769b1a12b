package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"menugen/internal/menu"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the menu pipeline once and warm the cache",
	Long:  "Serve the cached menu if there is one, otherwise generate every category and save it.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, logger, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		defer logger.Sync()

		return generate(cmd.Context(), a.Service, cmd.OutOrStdout())
	},
}

func generate(ctx context.Context, menus menu.Provider, w io.Writer) error {
	m, err := menus.Menu(ctx)

	var cacheErr *menu.CacheWriteError
	if err != nil && !errors.As(err, &cacheErr) {
		return err
	}

	printSummary(w, m)

	// the menu is complete but the next run will regenerate it
	return err
}

func printSummary(w io.Writer, m menu.Menu) {
	total := 0
	for _, s := range m.Sections() {
		fmt.Fprintf(w, "%-12s %d dishes\n", s.Name, len(s.Data))
		total += len(s.Data)
	}
	fmt.Fprintf(w, "%d dishes in %d categories\n", total, len(m))
}
