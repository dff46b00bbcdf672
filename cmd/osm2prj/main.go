package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lintang-b-s/osm2prj/pkg/converter"
	"github.com/lintang-b-s/osm2prj/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run. osm2prj input.osm: converts the model to output.prj in the working directory.
// the translation options are fixed, no flags or environment are read.
func run(args []string, stderr io.Writer) int {
	log, err := logger.NewWithLevel(zapcore.WarnLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer log.Sync()

	return newCommand(log, converter.OUTPUT_FILE, args, stderr)
}

func newCommand(log *zap.Logger, outputPath string, args []string, stderr io.Writer) int {
	convert := func(args []string) int {
		conv := converter.NewConverter(log, converter.NewOSMLoader(log), func() converter.Translator {
			return converter.NewContamTranslator(log)
		}, outputPath)
		return conv.Run(args, stderr)
	}
	// cobra routes its hidden completion commands before DisableFlagParsing applies, such a name is an input path here
	if len(args) > 0 && strings.HasPrefix(args[0], cobra.ShellCompRequestCmd) {
		return convert(args)
	}

	code := 1
	cmd := &cobra.Command{
		Use:   "osm2prj input.osm",
		Short: "Translate an OpenStudio model into a CONTAM project file (" + converter.OUTPUT_FILE + ")",
		// every argument, dashes included, counts toward the single input path
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		Args:               cobra.ArbitraryArgs,
		Run: func(c *cobra.Command, args []string) {
			code = convert(args)
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, converter.MSG_USAGE)
		return 1
	}
	return code
}
