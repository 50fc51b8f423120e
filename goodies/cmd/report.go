package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bobbthebuilder/goodies/datarecording"
)

func newReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report FILE",
		Short: "List the array operations stored in a recording.",
		Args:  cobra.ExactArgs(1),
		RunE:  reportRecording,
	}

	reportCmd.Flags().String("array", "", "Only show operations on this array")
	reportCmd.Flags().String("run", "", "Only show operations of this run ID")
	reportCmd.Flags().Int("limit", 0, "Show at most this many operations")

	return reportCmd
}

func reportRecording(cmd *cobra.Command, args []string) error {
	reader, err := datarecording.NewReader(args[0])
	if err != nil {
		return err
	}
	defer reader.Close()

	reader.MapTable(datarecording.OpTable, datarecording.OpEntry{})

	params := datarecording.QueryParams{OrderBy: "Run, Seq"}
	params.Limit, _ = cmd.Flags().GetInt("limit")

	if array, _ := cmd.Flags().GetString("array"); array != "" {
		params.Where = "Array = ?"
		params.Args = append(params.Args, array)
	}

	if run, _ := cmd.Flags().GetString("run"); run != "" {
		if params.Where != "" {
			params.Where += " AND "
		}

		params.Where += "Run = ?"
		params.Args = append(params.Args, run)
	}

	rows, total, err := reader.Query(context.Background(),
		datarecording.OpTable, params)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSEQ\tARRAY\tOP\tSLOT\tITEM\tLENGTH")

	for _, r := range rows {
		e := r.(datarecording.OpEntry)
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%s\t%d\n",
			e.Run, e.Seq, e.Array, e.Op, e.Slot, e.Item, e.Length)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d operations\n", len(rows), total)

	return nil
}
