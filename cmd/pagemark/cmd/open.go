package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagemark/pagemark/internal/api"
	"github.com/pagemark/pagemark/internal/output"
	"github.com/pagemark/pagemark/internal/viewer"
)

func newOpenCmd() *cobra.Command {
	var (
		bbox      string
		text      string
		printOnly bool
	)

	cmd := &cobra.Command{
		Use:   "open <file> <page>",
		Short: "Open a document page in the highlight viewer",
		Long: `Open a document page in the browser-based highlight viewer.

An optional bounding box (JSON array [x0,y0,x1,y1] in page coordinates)
and snippet text are passed along so the viewer can mark the region.

Examples:
  pagemark open manualA.pdf 14
  pagemark open manualA.pdf 14 --bbox "[72.5,140,380,162]" --text "torque to 45 Nm"
  pagemark open manualA.pdf 14 --print`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var page int
			if _, err := fmt.Sscanf(args[1], "%d", &page); err != nil || page < 1 {
				return fmt.Errorf("page must be a positive number, got %q", args[1])
			}

			doc := api.Document{File: args[0], Page: page, Text: text}
			if bbox != "" {
				if !json.Valid([]byte(bbox)) {
					return fmt.Errorf("--bbox must be a JSON array, got %q", bbox)
				}
				doc.BBox = json.RawMessage(bbox)
			}

			url := viewer.HighlightURL(cfg.Backend.BaseURL, doc)
			if printOnly || !cfg.Viewer.AutoOpen {
				output.New(cmd.OutOrStdout()).Status("", url)
				return nil
			}
			return viewer.NewOpener(cfg.Viewer.Command).Open(url)
		},
	}

	cmd.Flags().StringVar(&bbox, "bbox", "", "Bounding box JSON array [x0,y0,x1,y1]")
	cmd.Flags().StringVar(&text, "text", "", "Snippet text to highlight")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the viewer URL instead of launching it")

	return cmd
}
