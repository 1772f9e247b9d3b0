package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"datamapper/internal/catalog"
)

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage ADM catalog archives",
		Long: `Catalog commands move ADM archives between local files and the configured
catalog store (file, s3 or sqlite) and extract their mapping file.`,
	}

	cmd.AddCommand(newCatalogExportCommand(rootOpts))
	cmd.AddCommand(newCatalogSaveCommand(rootOpts))
	cmd.AddCommand(newCatalogLoadCommand(rootOpts))
	cmd.AddCommand(newCatalogListCommand(rootOpts))
	cmd.AddCommand(newCatalogHistoryCommand(rootOpts))

	return cmd
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)

		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	return nil
}

func newCatalogExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:           "export <catalog.adm>",
		Short:         "Write the mapping file of an archive",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openCatalogFile(cmd.Context(), rootOpts, args[0], false)
			if err != nil {
				return err
			}

			data, err := s.ExportMappings()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to export mappings", err)
			}

			return writeOutput(cmd, output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func newCatalogSaveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "save <catalog.adm> <name>",
		Short:         "Store an archive in the catalog store",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openCatalogFile(cmd.Context(), rootOpts, args[0], true)
			if err != nil {
				return err
			}

			if err := s.SaveCatalog(cmd.Context(), args[1]); err != nil {
				return WrapExitError(ExitCommandError, "failed to save catalog", err)
			}

			return newFormatter(rootOpts, cmd.OutOrStdout()).Emit(map[string]string{"name": args[1]}, nil,
				func(w io.Writer) { fmt.Fprintf(w, "saved %s\n", args[1]) })
		},
	}
}

func newCatalogLoadCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:           "load <name>",
		Short:         "Fetch an archive from the catalog store",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, true)
			if err != nil {
				return err
			}

			if err := s.LoadCatalog(cmd.Context(), args[0]); err != nil {
				return WrapExitError(ExitCommandError, "failed to load catalog", err)
			}

			data, err := s.ExportCatalog()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to pack catalog", err)
			}

			return writeOutput(cmd, output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func openStore(rootOpts *RootOptions) (catalog.Store, error) {
	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return nil, err
	}

	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open catalog store", err)
	}

	return store, nil
}

func newCatalogListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the archives in the catalog store",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(rootOpts)
			if err != nil {
				return err
			}

			names, err := store.List(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list catalogs", err)
			}

			return newFormatter(rootOpts, cmd.OutOrStdout()).Emit(names, nil, func(w io.Writer) {
				for _, n := range names {
					fmt.Fprintln(w, n)
				}
			})
		},
	}
}

func newCatalogHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "history <name>",
		Short:         "List the stored versions of an archive (sqlite backend)",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(rootOpts)
			if err != nil {
				return err
			}

			versioned, ok := store.(*catalog.SQLiteStore)
			if !ok {
				return NewExitError(ExitCommandError, "catalog history needs the sqlite backend")
			}
			defer versioned.Close()

			history, err := versioned.History(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read catalog history", err)
			}

			return newFormatter(rootOpts, cmd.OutOrStdout()).Emit(history, nil, func(w io.Writer) {
				for _, v := range history {
					fmt.Fprintf(w, "%d\t%s\t%d bytes\n", v.Version, v.Created.Format("2006-01-02 15:04:05"), v.Size)
				}
			})
		},
	}
}
