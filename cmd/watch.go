package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/macrogen/pkg/action/generate"
	"github.com/cmmoran/macrogen/pkg/action/watch"
)

func init() {
	rootCmd.AddCommand(NewWatchCommand())
}

func NewWatchCommand() *cobra.Command {
	var watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "regenerate on descriptor changes",
		Long:  "Run generate, then run it again whenever a descriptor file is written, until interrupted",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err = cfg.Normalize(); err != nil {
				return err
			}
			debounce, _ := c.Flags().GetDuration("debounce")
			w, err := watch.New(cfg, debounce, func(r *generate.Report, err error) {
				if r != nil {
					fmt.Fprintf(c.OutOrStdout(), "%s -> %s\n", r.Summary(), r.OutFile)
				}
				if err != nil {
					fmt.Fprintln(c.ErrOrStderr(), "error:", err)
				}
			})
			if err != nil {
				return err
			}
			return w.Run(c.Context())
		},
	}
	bindOutputFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before regenerating")

	return watchCmd
}
