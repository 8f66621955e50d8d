package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/macrogen/pkg/action/getter"
	"github.com/cmmoran/macrogen/pkg/host"
	"github.com/cmmoran/macrogen/pkg/macro"
)

func init() {
	rootCmd.AddCommand(NewGetterCommand())
}

func NewGetterCommand() *cobra.Command {
	var (
		options     = &macro.Options{}
		descriptors = make([]string, 0)
	)

	var getterCmd = &cobra.Command{
		Use:   "getter CLASS FIELD",
		Short: "generate a getter",
		Long:  "Generate a public getter for the private FIELD of CLASS and print it",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			lib, err := host.Load(descriptors...)
			if err != nil {
				return err
			}
			res, err := getter.ApplyWithOpts(c.Context(), lib, args[0], args[1], options)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.OutOrStdout(), res.Declaration.Code)
			return err
		},
	}
	getterCmd.Flags().StringSliceVarP(&descriptors, "descriptor", "d", []string{}, "class descriptor file(s) or directories")
	getterCmd.Flags().StringVar(&options.PrivacyMarker, "privacy-marker", macro.DefaultPrivacyMarker, "prefix stripped from the field name")
	_ = getterCmd.MarkFlagRequired("descriptor")

	return getterCmd
}
