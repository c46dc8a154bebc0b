package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagemark/pagemark/internal/api"
	"github.com/pagemark/pagemark/internal/errors"
	"github.com/pagemark/pagemark/internal/output"
)

func newPresetsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the preset result sets the backend offers",
		Long: `List the preset result sets (JSONL files) available on the backend.

Any listed name can be browsed with 'pagemark search --preset <name>'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := api.NewClient(cfg.Backend.BaseURL, api.WithTimeout(cfg.TimeoutDuration()))
			files, err := client.ListPresets(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", errors.UserText(err))
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(files)
			}

			out := output.New(cmd.OutOrStdout())
			if len(files) == 0 {
				out.Status("", "No presets available.")
				return nil
			}
			for _, f := range files {
				out.Statusf("", "%s  (--preset %s)", strings.TrimSuffix(f, ".jsonl"), f)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the file list as JSON")

	return cmd
}
