package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagemark/pagemark/internal/api"
	"github.com/pagemark/pagemark/internal/errors"
	"github.com/pagemark/pagemark/internal/output"
	"github.com/pagemark/pagemark/internal/viewer"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	page    int
	perPage int
	preset  string // browse a preset file instead of free-text search
	format  string // "text", "json"
	open    int    // 1-based result to open in the viewer, 0 = none
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search documents and print one page of results",
		Long: `Search the indexed documents and print one page of results.

With --preset the named result set is paged through instead of running
a free-text query. Use --open to hand a result straight to the viewer.

Examples:
  pagemark search "torque spec"
  pagemark search "valve seat" --page 2 --per-page 20
  pagemark search --preset manualA.jsonl
  pagemark search "gasket" --format json
  pagemark search "gasket" --open 1`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearch(cmd.Context(), cmd, query, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "Page number (1-based)")
	cmd.Flags().IntVarP(&opts.perPage, "per-page", "n", 0, "Results per page (0 uses the configured default)")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "Browse a preset result set instead of searching")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().IntVar(&opts.open, "open", 0, "Open the Nth result in the viewer")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, query string, opts searchOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if opts.perPage <= 0 {
		opts.perPage = cfg.Search.PerPage
	}
	if query == "" && opts.preset == "" {
		return fmt.Errorf("provide a query or --preset")
	}

	client := api.NewClient(cfg.Backend.BaseURL,
		api.WithEngine(api.Engine(cfg.Backend.Engine)),
		api.WithTimeout(cfg.TimeoutDuration()))
	out := output.New(cmd.OutOrStdout())

	var (
		hits   []api.Hit
		method string
	)
	if opts.preset != "" {
		hits, err = client.PresetSearch(ctx, opts.preset, opts.page, opts.perPage)
		method = "Preset: " + strings.TrimSuffix(opts.preset, ".jsonl")
	} else {
		hits, err = client.Search(ctx, query, opts.page, opts.perPage)
		method = client.Engine().Label()
	}
	if err != nil {
		return fmt.Errorf("%s", errors.UserText(err))
	}
	slog.Info("search_complete",
		slog.String("method", method),
		slog.Int("page", opts.page),
		slog.Int("hits", len(hits)))

	if len(hits) == 0 {
		out.Status("", "No results.")
		return nil
	}

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(hits); err != nil {
			return err
		}
	} else {
		out.Statusf("🔍", "[%s] page %d", method, opts.page)
		out.Newline()
		for i, h := range hits {
			out.Hit(i+1, h)
		}
		if len(hits) == opts.perPage {
			out.Statusf("", "more results: --page %d", opts.page+1)
		}
	}

	if opts.open > 0 {
		if opts.open > len(hits) {
			return fmt.Errorf("--open %d is out of range, page has %d results", opts.open, len(hits))
		}
		doc := hits[opts.open-1].Document
		url := viewer.HighlightURL(client.BaseURL(), doc)
		if !cfg.Viewer.AutoOpen {
			out.Status("", url)
			return nil
		}
		return viewer.NewOpener(cfg.Viewer.Command).Open(url)
	}
	return nil
}
