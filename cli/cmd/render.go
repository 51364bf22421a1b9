package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/krakenconfig/hocon/hocon"
	"github.com/krakenconfig/hocon/hoconparser"
	"github.com/krakenconfig/hocon/serialize"
)

func init() {
	rootCmd.RunE = runRender
}

func runRender(cmd *cobra.Command, args []string) error {
	if verbose {
		hocon.Logger.SetLevel(logrus.DebugLevel)
	}

	cliCfg, err := LoadConfig()
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "hoconc: loading .hoconc.yaml")
	}

	text, err := readInput()
	if err != nil {
		return errors.Wrap(err, "hoconc: reading input")
	}

	mode, err := unresolvedMode(unresolved)
	if err != nil {
		return err
	}
	opts := hocon.Options{BaseDir: cliCfg.IncludeBaseDir(inputPath), Unresolved: mode}
	if cliCfg.Socks != "" {
		os.Setenv("HOCON_SOCKS", cliCfg.Socks)
	}

	cfg, err := hocon.ParseString(text, opts)
	if err != nil {
		return err
	}

	if verbose {
		hocon.Logger.Debug(repr.String(cfg.Tree))
	}

	root := hoconparser.NewTree(cfg.Tree)
	if pathFlag != "" {
		v, lerr := cfg.Pop(pathFlag)
		if lerr != nil {
			return lerr
		}
		root = v
	}

	out, err := render(root)
	if err != nil {
		return err
	}
	return writeOutput(out)
}

func render(v hoconparser.Value) (string, error) {
	switch outputFormat {
	case "hocon":
		return serialize.ToHOCON(v), nil
	case "json":
		ind := strings.Repeat(" ", indent)
		if compact {
			ind = ""
		}
		return serialize.ToJSON(v, ind), nil
	case "yaml":
		return serialize.ToYAML(v)
	case "properties":
		return serialize.ToProperties(v), nil
	default:
		return "", fmt.Errorf("unknown output format %q", outputFormat)
	}
}

func readInput() (string, error) {
	if inputPath == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(inputPath)
	return string(data), err
}

func writeOutput(text string) error {
	if outputPath == "" {
		_, err := fmt.Fprintln(os.Stdout, text)
		return err
	}
	return os.WriteFile(outputPath, []byte(text+"\n"), 0o644)
}
