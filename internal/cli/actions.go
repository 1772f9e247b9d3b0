package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"datamapper/internal/mapping"
)

type actionInfo struct {
	Name         string `json:"name"`
	Multiplicity string `json:"multiplicity"`
	SourceType   string `json:"sourceType"`
	TargetType   string `json:"targetType"`
}

// NewActionsCommand creates the actions command.
func NewActionsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "actions",
		Short:         "List the field actions known to the runtime",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(rootOpts, false)
			if err != nil {
				return err
			}

			if err := s.LoadActions(cmd.Context()); err != nil {
				return WrapExitError(ExitCommandError, "failed to load field actions", err)
			}

			var out []actionInfo

			for _, m := range mapping.Multiplicities {
				for _, def := range s.Actions.ByMultiplicity(m) {
					out = append(out, actionInfo{
						Name:         def.Name,
						Multiplicity: m.String(),
						SourceType:   string(def.SourceType),
						TargetType:   string(def.TargetType),
					})
				}
			}

			return newFormatter(rootOpts, cmd.OutOrStdout()).Emit(out, nil, func(w io.Writer) {
				for _, a := range out {
					fmt.Fprintf(w, "%-12s %-28s %s -> %s\n", a.Multiplicity, a.Name, a.SourceType, a.TargetType)
				}
			})
		},
	}
}
