package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bobbthebuilder/goodies/fixedarray"
)

var demoValues = []int{10, 10, 3, 2, 19, 44}

func newDemoCmd() *cobra.Command {
	demoCmd := &cobra.Command{
		Use:   "demo [values...]",
		Short: "Append integers to an array and print what fits.",
		Long: "`demo` appends the given integers, or 10 10 3 2 19 44 when " +
			"none are given, to an array of --capacity elements and prints " +
			"the live elements.",
		RunE: func(cmd *cobra.Command, args []string) error {
			capacity, _ := cmd.Flags().GetInt("capacity")
			if capacity < 0 {
				return fmt.Errorf("capacity %d must not be negative", capacity)
			}

			values := demoValues
			if len(args) > 0 {
				values = make([]int, len(args))
				for i, a := range args {
					v, err := strconv.Atoi(a)
					if err != nil {
						return fmt.Errorf("value %q is not an integer", a)
					}

					values[i] = v
				}
			}

			arr := fixedarray.New[int]("Demo", capacity)
			arr.AppendMany(values...)

			fmt.Fprintln(cmd.OutOrStdout(), arr)

			return nil
		},
	}

	demoCmd.Flags().Int("capacity", 5, "Capacity of the array")

	return demoCmd
}
