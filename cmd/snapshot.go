package cmd

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cmmoran/macrogen/pkg/action/snapshot"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var manifestPath string

	var snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "versioned snapshots of generated output",
	}
	snapshotCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "gen/manifest.yaml", "snapshot manifest file")

	var name, version string
	var createCmd = &cobra.Command{
		Use:   "create",
		Short: "generate and record a snapshot",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out, err := snapshot.Generate(c.Context(), cfg, manifestPath, name, version)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), out)
			return nil
		},
	}
	bindOutputFlags(createCmd)
	createCmd.Flags().StringVar(&name, "name", "macros", "snapshot name")
	createCmd.Flags().StringVar(&version, "version", "", "snapshot semantic version, ex: v1.2.0")
	_ = createCmd.MarkFlagRequired("version")

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		RunE: func(c *cobra.Command, args []string) error {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				return err
			}
			data := pterm.TableData{{"Name", "Version", "Declarations", "File", ""}}
			for _, s := range m.Snapshots {
				marker := ""
				switch s.Version {
				case m.CurrentVersion:
					marker = "current"
				case m.PreviousVersion:
					marker = "previous"
				}
				data = append(data, []string{s.Name, s.Version, strconv.Itoa(s.Declarations), s.File, marker})
			}
			return pterm.DefaultTable.WithHasHeader().WithWriter(c.OutOrStdout()).WithData(data).Render()
		},
	}

	var from, to string
	var diffCmd = &cobra.Command{
		Use:   "diff",
		Short: "diff two snapshots, by default the previous against the current one",
		RunE: func(c *cobra.Command, args []string) error {
			diff, err := snapshot.Diff(manifestPath, from, to)
			if err != nil {
				return err
			}
			if diff == "" {
				fmt.Fprintln(c.OutOrStdout(), "no changes")
				return nil
			}
			fmt.Fprint(c.OutOrStdout(), diff)
			return nil
		},
	}

	diffCmd.Flags().StringVar(&from, "from", "", "older snapshot version (default: previous)")
	diffCmd.Flags().StringVar(&to, "to", "", "newer snapshot version (default: current)")

	snapshotCmd.AddCommand(createCmd, listCmd, diffCmd)
	return snapshotCmd
}
