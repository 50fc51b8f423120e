package cmd

import (
	"github.com/spf13/cobra"
	"github.com/syifan/goseth"

	"github.com/bobbthebuilder/goodies/scenario"
)

func newInspectCmd() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect SCENARIO",
		Short: "Play a YAML scenario and dump the array's internal state as JSON.",
		Long: "`inspect` shows the whole storage block, including stale slots " +
			"past the live length.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.LoadFile(args[0])
			if err != nil {
				return err
			}

			arr, err := s.Play()
			if err != nil {
				return err
			}

			depth, _ := cmd.Flags().GetInt("depth")

			serializer := goseth.NewSerializer()
			serializer.SetRoot(arr)
			serializer.SetMaxDepth(depth)

			return serializer.Serialize(cmd.OutOrStdout())
		},
	}

	inspectCmd.Flags().Int("depth", 2, "Maximum depth of the dump")

	return inspectCmd
}
