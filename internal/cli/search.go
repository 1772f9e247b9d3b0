package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
)

type searchMatch struct {
	DocID string `json:"docId"`
	Path  string `json:"path"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	var target bool

	cmd := &cobra.Command{
		Use:           "search <catalog.adm> <filter>",
		Short:         "Find fields whose name contains a filter",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openCatalogFile(cmd.Context(), rootOpts, args[0], false)
			if err != nil {
				return err
			}

			res := s.Search(args[1], !target)

			fold := cases.Fold()
			needle := fold.String(args[1])

			var out []searchMatch

			for _, doc := range s.Documents.SideWithPseudo(!target) {
				if !doc.Visible {
					continue
				}

				for _, f := range doc.AllFields() {
					if f.Visible && strings.Contains(fold.String(f.Name), needle) {
						out = append(out, searchMatch{DocID: doc.ID, Path: f.Path})
					}
				}
			}

			return newFormatter(rootOpts, cmd.OutOrStdout()).Emit(out, s.Diagnostics, func(w io.Writer) {
				for _, m := range out {
					fmt.Fprintf(w, "%s:%s\n", m.DocID, m.Path)
				}

				fmt.Fprintf(w, "%d match(es)\n", res.Matches)
			})
		},
	}

	cmd.Flags().BoolVar(&target, "target", false, "search the target side")

	return cmd
}
