package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/krakenconfig/hocon/hocon"
)

var (
	rootCmd = &cobra.Command{
		Use:          "hoconc",
		Short:        "hoconc",
		SilenceUsage: true,
		Long:         `hoconc parses, resolves and re-serializes HOCON configuration documents.`,
	}

	inputPath    string
	outputPath   string
	outputFormat string
	indent       int
	compact      bool
	pathFlag     string
	verbose      bool
	unresolved   string
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "input .conf file (defaults to stdin)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "output file (defaults to stdout)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "hocon", "output format: hocon, json, yaml or properties")
	rootCmd.PersistentFlags().IntVarP(&indent, "indent", "n", 2, "number of spaces to indent nested output (json)")
	rootCmd.PersistentFlags().BoolVarP(&compact, "compact", "c", false, "render without indentation or newlines where the format allows it")
	rootCmd.PersistentFlags().StringVarP(&pathFlag, "path", "p", "", "pop and print a single dotted path instead of the whole document")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log resolver progress at debug level")
	rootCmd.PersistentFlags().StringVar(&unresolved, "unresolved", "mandatory", "what to do with a substitution still unresolved at the end: mandatory, omit, null or str")
	return rootCmd.Execute()
}

// unresolvedMode parses the --unresolved flag into hocon.UnresolvedMode,
// rejecting anything but the four spec.md §4.4 modes.
func unresolvedMode(name string) (hocon.UnresolvedMode, error) {
	switch strings.ToLower(name) {
	case "mandatory", "":
		return hocon.UnresolvedMandatory, nil
	case "omit":
		return hocon.UnresolvedOmit, nil
	case "null":
		return hocon.UnresolvedNull, nil
	case "str":
		return hocon.UnresolvedStr, nil
	default:
		return hocon.UnresolvedMandatory, fmt.Errorf("hoconc: unknown --unresolved mode %q (want mandatory, omit, null or str)", name)
	}
}

func init() {}
