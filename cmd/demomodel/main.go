package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lintang-b-s/osm2prj/pkg/demo"
	"github.com/lintang-b-s/osm2prj/pkg/logger"
	"github.com/lintang-b-s/osm2prj/pkg/osm"
	"github.com/lintang-b-s/osm2prj/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const DEFAULT_OUTPUT_PATH = "CONTAMDemo.osm"

func main() {
	if err := newCommand(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "demomodel",
		Short:         "Generate the four zone CONTAM demonstration model",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			log, err := logger.New()
			if err != nil {
				return err
			}
			defer log.Sync()
			return generate(log, v.GetString("input-path"), v.GetString("output-path"))
		},
	}
	cmd.Flags().StringP("input-path", "i", "", "template model to add the demo building to")
	cmd.Flags().StringP("output-path", "o", DEFAULT_OUTPUT_PATH, "path of the generated model")

	v.SetEnvPrefix("demomodel")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(cmd.Flags())
	cobra.OnInitialize(func() {
		if err := util.ReadConfig(v); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	})
	return cmd
}

// generate. builds the demo on the template at inputPath, the embedded template when it is empty or unloadable.
func generate(log *zap.Logger, inputPath, outputPath string) error {
	model, err := loadTemplate(log, inputPath)
	if err != nil {
		return err
	}
	if err := demo.BuildDemoModel(model); err != nil {
		return fmt.Errorf("failed to build demo model: %w", err)
	}
	if err := model.Save(outputPath, true); err != nil {
		return fmt.Errorf("failed to write '%s': %w", outputPath, err)
	}
	log.Info("wrote demo model", zap.String("path", outputPath), zap.Int("objects", model.NumberOfObjects()))
	return nil
}

func loadTemplate(log *zap.Logger, inputPath string) (*osm.Model, error) {
	if inputPath != "" {
		model, err := osm.NewVersionTranslator(log).LoadModel(inputPath)
		if err == nil {
			return model, nil
		}
		log.Warn("failed to load template, using the default template",
			zap.String("path", inputPath), zap.Error(err))
	}
	return demo.LoadTemplate(log)
}
