package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type suggestion struct {
	DocID         string  `json:"docId"`
	Path          string  `json:"path"`
	NameScore     float64 `json:"nameScore"`
	Compatibility string  `json:"compatibility"`
	Score         float64 `json:"score"`
}

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <catalog.adm> <target-doc-id> <target-path>",
		Short: "Rank the source fields that could feed a target field",
		Long: `Suggest scores every terminal source field against one target field by
name similarity and type compatibility and prints the best candidates.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openCatalogFile(cmd.Context(), rootOpts, args[0], false)
			if err != nil {
				return err
			}

			doc := s.Documents.Find(args[1], false)
			if doc == nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("target document %q not found", args[1]))
			}

			target := doc.GetField(args[2])
			if target == nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("field %q not found in %s", args[2], args[1]))
			}

			var out []suggestion

			for _, c := range s.SuggestSources(target, limit) {
				out = append(out, suggestion{
					DocID:         c.Source.DocID(),
					Path:          c.Source.Path,
					NameScore:     c.NameScore,
					Compatibility: c.TypeCompat.Compatibility.String(),
					Score:         c.CombinedScore,
				})
			}

			return newFormatter(rootOpts, cmd.OutOrStdout()).Emit(out, nil, func(w io.Writer) {
				for _, sg := range out {
					fmt.Fprintf(w, "%.2f  %s:%s (%s)\n", sg.Score, sg.DocID, sg.Path, sg.Compatibility)
				}
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "number of candidates to print")

	return cmd
}
