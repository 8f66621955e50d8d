package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/macrogen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

// bindOutputFlags registers the flags shared by generate, watch and snapshot
// and binds them to their config keys.
func bindOutputFlags(c *cobra.Command) {
	c.Flags().StringSliceP("descriptor", "d", []string{}, "class descriptor file(s) or directories")
	c.Flags().StringP("output-directory", "o", "gen", "directory to write generated declarations")
	c.Flags().StringP("output-file", "f", "macros.g.dart", "output file where declarations will be written")
	c.PreRun = func(c *cobra.Command, _ []string) {
		_ = viper.BindPFlag("descriptors", c.Flags().Lookup("descriptor"))
		_ = viper.BindPFlag("out_dir", c.Flags().Lookup("output-directory"))
		_ = viper.BindPFlag("out_file", c.Flags().Lookup("output-file"))
	}
}

func NewGenerateCommand() *cobra.Command {
	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "run configured macro targets",
		Long:  "Apply every target from the config file to the loaded descriptors and write one augmentation file",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			report, err := generate.Generate(c.Context(), cfg)
			if report != nil {
				fmt.Fprintf(c.OutOrStdout(), "%s -> %s\n", report.Summary(), report.OutFile)
				for _, f := range report.Failures {
					fmt.Fprintf(c.ErrOrStderr(), "%s: %v\n", f.Target, f.Err)
				}
			}
			return err
		},
	}
	bindOutputFlags(generateCmd)

	return generateCmd
}
