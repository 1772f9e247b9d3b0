package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"datamapper/internal/document"
)

type inspectOptions struct {
	ID      string
	Target  bool
	Result  bool
	Dump    bool
	Root    string
	Params  map[string]string
	Inspect string
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <format> <file|class>",
		Short: "Load a document through its inspection service and list its fields",
		Long: `Inspect loads one document and prints its field paths.

For JAVA the second argument is a class name, for every other format it is
a file holding the instance or schema. With --result the file is a stored
inspection response and no service is called.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "document id (defaults to the file name)")
	cmd.Flags().BoolVar(&opts.Target, "target", false, "load the document on the target side")
	cmd.Flags().BoolVar(&opts.Result, "result", false, "the file is a stored inspection response")
	cmd.Flags().BoolVar(&opts.Dump, "dump", false, "print the field tree instead of paths")
	cmd.Flags().StringVar(&opts.Root, "root", "", "selected root element (XML)")
	cmd.Flags().StringVar(&opts.Inspect, "inspection-type", "", "INSTANCE or SCHEMA")
	cmd.Flags().StringToStringVar(&opts.Params, "param", nil, "inspection parameter key=value (repeatable)")

	return cmd
}

func runInspect(rootOpts *RootOptions, opts *inspectOptions, formatName, input string, cmd *cobra.Command) error {
	format := document.ParseFormat(formatName)
	if format == document.FormatUnknown || format == document.FormatConstant || format == document.FormatProperty {
		return NewExitError(ExitCommandError, fmt.Sprintf("unsupported document format %q", formatName))
	}

	id := opts.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	doc := document.New(id, id, format, !opts.Target)
	doc.SelectedRoot = opts.Root
	doc.InspectionParameters = opts.Params

	if opts.Inspect != "" {
		doc.InspectionType = document.InspectionType(strings.ToUpper(opts.Inspect))
	}

	switch {
	case format == document.FormatJava && !opts.Result:
		doc.InspectionSource = input
		doc.InspectionType = document.InspectionJavaClass
	default:
		data, err := os.ReadFile(input)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read input", err)
		}

		if opts.Result {
			doc.InspectionResult = string(data)
		} else {
			doc.InspectionSource = string(data)
		}
	}

	s, err := openSession(rootOpts, false)
	if err != nil {
		return err
	}

	if err := s.AddDocument(cmd.Context(), doc); err != nil {
		return WrapExitError(ExitCommandError, "inspection failed", err)
	}

	return newFormatter(rootOpts, cmd.OutOrStdout()).Emit(doc.FieldPaths(), s.Diagnostics, func(w io.Writer) {
		if opts.Dump {
			document.Dump(w, doc)

			return
		}

		for _, p := range doc.FieldPaths() {
			fmt.Fprintln(w, p)
		}
	})
}
