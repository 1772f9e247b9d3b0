// Package cli implements the datamapper command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"datamapper/internal/catalog"
	"datamapper/internal/config"
	"datamapper/internal/session"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Format     string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "datamapper",
		Short: "Design and inspect data mappings",
		Long: `datamapper loads source and target documents through the inspection
services, edits the mappings between their fields and reads and writes
AtlasMap mapping files and ADM catalog archives.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "configuration file (YAML)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewActionsCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewSuggestCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))

	return cmd
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg := config.Default()

	if opts.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
		}
	}

	if opts.Verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

// openSession creates a session wired to the configured catalog store.
func openSession(opts *RootOptions, withStore bool) (*session.Session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	var sessOpts []session.Option

	if withStore {
		store, err := catalog.NewStore(cfg.Catalog)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open catalog store", err)
		}

		sessOpts = append(sessOpts, session.WithStore(store))
	}

	s, err := session.New(cfg, sessOpts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to create session", err)
	}

	return s, nil
}

// openCatalogFile creates a session and imports the archive at path.
func openCatalogFile(ctx context.Context, opts *RootOptions, path string, withStore bool) (*session.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read catalog", err)
	}

	s, err := openSession(opts, withStore)
	if err != nil {
		return nil, err
	}

	if err := s.ImportCatalog(ctx, data); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to import catalog", err)
	}

	return s, nil
}
