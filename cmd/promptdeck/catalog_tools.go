package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/promptdeck/internal/catalog"
	"github.com/MrSnakeDoc/promptdeck/internal/clipboard"
	"github.com/MrSnakeDoc/promptdeck/internal/domain"
	"github.com/MrSnakeDoc/promptdeck/internal/index"
	"github.com/MrSnakeDoc/promptdeck/internal/logger"
	"github.com/MrSnakeDoc/promptdeck/internal/sources/catalogfile"
	"github.com/MrSnakeDoc/promptdeck/internal/store/memory"
)

// offlineService loads a catalog and wraps it in a service backed by an
// in-memory store, with out as the clipboard.
func offlineService(file string, out io.Writer) (*catalog.Service, error) {
	c, err := catalogfile.LoadCatalog(file)
	if err != nil {
		return nil, err
	}
	idx := index.NewMemoryIndex()
	idx.Update(c, catalogfile.NewLoader(file).Source())
	return catalog.NewService(idx, memory.NewStore(), clipboard.NewStream(out), logger.NewNop(), nil), nil
}

func newValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a catalog file loads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalogfile.LoadCatalog(file)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d prompts, %d tags (%s)\n",
				c.Len(), len(c.Tags()), catalogfile.NewLoader(file).Source())
			return err
		},
	}
	addCatalogFlag(cmd, &file)
	return cmd
}

func newSearchCmd() *cobra.Command {
	var (
		file       string
		tags       []string
		sortWeight bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog",
		Long: `Search the catalog by title, prompt text and remark (case-insensitive).
Prints one "id<TAB>weight<TAB>title" line per match, in catalog order
unless --sort-weight is set.`,
		Example: `  promptdeck search translator
  promptdeck search --tag favorite --tag write
  promptdeck search --sort-weight | head`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			svc, err := offlineService(file, out)
			if err != nil {
				return err
			}

			q := catalog.Query{View: domain.CategoryAll, Tags: tags, SortByWeight: sortWeight}
			if len(args) == 1 {
				q.Text = args[0]
			}
			prompts, err := svc.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			for _, p := range prompts {
				if _, err := fmt.Fprintf(out, "%d\t%d\t%s\n", p.ID, p.Weight, p.Title); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addCatalogFlag(cmd, &file)
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "only prompts carrying this tag (repeatable)")
	cmd.Flags().BoolVar(&sortWeight, "sort-weight", false, "order by weight, highest first")
	return cmd
}

func newCopyCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "copy <id>",
		Short:   "Write a prompt's text to stdout",
		Example: "  promptdeck copy 2 | pbcopy",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid prompt id %q", args[0])
			}
			svc, err := offlineService(file, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return svc.CopyToClipboard(cmd.Context(), id)
		},
	}
	addCatalogFlag(cmd, &file)
	return cmd
}
