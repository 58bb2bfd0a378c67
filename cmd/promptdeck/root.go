package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/promptdeck/internal/version"
)

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "promptdeck",
		Short: "Curated prompt gallery with bookmarks and custom prompts",
		Long: `promptdeck serves a curated catalog of chat prompts over HTTP.

Users browse the catalog, search it, filter it by tag, bookmark prompts,
author their own and copy a prompt's text to paste it into a chat.

Without a subcommand, promptdeck runs the server (same as "promptdeck serve").
The catalog tools (validate, search, copy) work offline on a catalog file
or on the embedded default catalog.`,
		Version:      version.Version,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	root.AddCommand(
		serve,
		newValidateCmd(),
		newSearchCmd(),
		newCopyCmd(),
		newVersionCmd(),
	)
	return root
}

// addCatalogFlag registers --file on catalog tools
func addCatalogFlag(cmd *cobra.Command, file *string) {
	cmd.Flags().StringVarP(file, "file", "f", "", "catalog YAML file (default: embedded catalog)")
}
