package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/macrogen/pkg/action/construct"
	"github.com/cmmoran/macrogen/pkg/host"
	"github.com/cmmoran/macrogen/pkg/macro"
)

func init() {
	rootCmd.AddCommand(NewConstructorCommand())
}

func NewConstructorCommand() *cobra.Command {
	var (
		options     = &macro.Options{}
		descriptors = make([]string, 0)
	)

	// constructorCmd represents the macrogen constructor command
	var constructorCmd = &cobra.Command{
		Use:   "constructor CLASS",
		Short: "generate a constructor",
		Long:  "Synthesize a constructor for CLASS from its fields and its superclass's unnamed constructor, and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			lib, err := host.Load(descriptors...)
			if err != nil {
				return err
			}
			res, err := construct.ApplyWithOpts(c.Context(), lib, args[0], options)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.OutOrStdout(), res.Declaration.Code)
			return err
		},
	}
	constructorCmd.Flags().StringSliceVarP(&descriptors, "descriptor", "d", []string{}, "class descriptor file(s) or directories")
	constructorCmd.Flags().StringVarP(&options.Name, "name", "n", "", "constructor name, empty for the unnamed constructor")
	constructorCmd.Flags().BoolVarP(&options.SkipInitialized, "skip-initialized", "s", false, "leave out fields that have an initializer")
	constructorCmd.Flags().BoolVarP(&options.Const, "const", "c", false, "generate a const constructor")
	constructorCmd.Flags().StringArrayVarP(&options.ExtraNamedParameters, "extra", "e", []string{}, "extra named parameter appended verbatim, ex: \"required this.id\"")
	constructorCmd.Flags().StringVar(&options.PrivacyMarker, "privacy-marker", macro.DefaultPrivacyMarker, "prefix that turns a field into a positional parameter")
	_ = constructorCmd.MarkFlagRequired("descriptor")

	return constructorCmd
}
