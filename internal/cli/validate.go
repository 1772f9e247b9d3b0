package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <catalog.adm>",
		Short: "Check the mappings of a catalog archive",
		Long: `Validate imports a catalog archive, reloads its documents from the stored
inspection results and reports every mapping problem found.

Exits with status 1 when an error was reported.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openCatalogFile(cmd.Context(), rootOpts, args[0], false)
			if err != nil {
				return err
			}

			diags := s.Validate()
			diags.Merge(s.Diagnostics)

			mappings := len(s.Definition.Mappings())

			err = newFormatter(rootOpts, cmd.OutOrStdout()).Emit(map[string]int{"mappings": mappings}, diags,
				func(w io.Writer) {
					fmt.Fprintf(w, "%s: %d mapping(s)\n", s.Definition.Name, mappings)
				})
			if err != nil {
				return err
			}

			if diags.HasErrors() {
				return NewExitError(ExitFailure, fmt.Sprintf("%d error(s) found", len(diags.Errors)))
			}

			return nil
		},
	}
}
