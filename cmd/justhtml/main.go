// Command justhtml parses an HTML or Markdown document and prints its
// serialized DOM tree, along with any parse diagnostics.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arborview/parsekit"
	"github.com/arborview/parsekit/dom"
	"github.com/arborview/parsekit/reporter"
	"github.com/arborview/parsekit/serialize"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		markdown    bool
		strict      bool
		showErrors  bool
		pretty      bool
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:           "justhtml [flags] <file>",
		Short:         "Parse an HTML or Markdown document and print its DOM tree",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			if showVersion {
				fmt.Fprintf(stderr, "justhtml version %s\n", version)
				return nil
			}
			if len(posArgs) == 0 {
				_ = cmd.Usage()
				return fmt.Errorf("missing input file")
			}

			input, err := readInput(posArgs[0], stdin)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			sink := reporter.New()
			var records []reporter.Record
			sink.AttachOutputCallback(func(rec reporter.Record) {
				records = append(records, rec)
			})

			var doc *dom.Document
			if markdown {
				doc = parsekit.ParseMarkdown(string(input), parsekit.WithSink(sink))
			} else {
				var opts []parsekit.Option
				opts = append(opts, parsekit.WithSink(sink))
				if strict {
					opts = append(opts, parsekit.WithStrictMode())
				}
				doc, err = parsekit.ParseBytes(input, opts...)
				if err != nil {
					return fmt.Errorf("parsing HTML: %w", err)
				}
			}

			serializeOpts := serialize.DefaultOptions()
			serializeOpts.Pretty = pretty
			fmt.Fprintln(stdout, serialize.ToHTML(doc, serializeOpts))

			if showErrors {
				for _, rec := range records {
					fmt.Fprintln(stderr, rec.String())
				}
				if len(records) > 0 {
					fmt.Fprintf(stderr, "%d parse error(s)\n", len(records))
				}
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.BoolVar(&markdown, "markdown", false, "Treat input as Markdown instead of HTML")
	fl.BoolVar(&strict, "strict", false, "Enable strict tag/attribute name checking")
	fl.BoolVar(&showErrors, "errors", false, "Print parse diagnostics to stderr")
	fl.BoolVar(&pretty, "pretty", true, "Pretty-print the serialized tree")
	fl.BoolVarP(&showVersion, "version", "v", false, "Show version")

	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
