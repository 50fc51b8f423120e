package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/bobbthebuilder/goodies/datarecording"
	"github.com/bobbthebuilder/goodies/fixedarray"
	"github.com/bobbthebuilder/goodies/instrumentation/hooking"
	"github.com/bobbthebuilder/goodies/instrumentation/tracing"
	"github.com/bobbthebuilder/goodies/scenario"
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run SCENARIO",
		Short: "Play a YAML scenario and print the resulting array.",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	runCmd.Flags().BoolP("verbose", "v", false, "Log every array operation to stderr")
	runCmd.Flags().String("record", "",
		"Record every array operation into the SQLite file PATH.sqlite3")
	runCmd.Flags().Bool("profile", false, "Report heap bytes allocated while playing")
	runCmd.Flags().Bool("resources", false, "Report process memory and CPU after playing")

	return runCmd
}

func runScenario(cmd *cobra.Command, args []string) error {
	s, err := scenario.LoadFile(args[0])
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	recordPath, _ := cmd.Flags().GetString("record")
	profile, _ := cmd.Flags().GetBool("profile")
	resources, _ := cmd.Flags().GetBool("resources")

	counter := tracing.NewOpCounter()
	hooks := []hooking.Hook{counter}

	if verbose {
		hooks = append(hooks,
			tracing.NewLogHook(log.New(cmd.ErrOrStderr(), "", 0)))
	}

	var recorder *datarecording.SQLiteWriter
	if recordPath != "" {
		recorder, err = datarecording.New(recordPath)
		if err != nil {
			return err
		}
		defer recorder.Close()

		hooks = append(hooks, datarecording.NewRecordingHook(recorder))
	}

	var (
		arr       *fixedarray.Array[string]
		playErr   error
		heapBytes int64
	)

	play := func() { arr, playErr = s.Play(hooks...) }

	if profile {
		heapBytes, err = measureHeapAlloc(play)
		if err != nil {
			return err
		}
	} else {
		play()
	}

	if playErr != nil {
		return playErr
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, arr)
	fmt.Fprintf(out, "length=%d capacity=%d appended=%d dropped=%d removed=%d\n",
		arr.Len(), arr.Capacity(),
		counter.Count(fixedarray.HookPosAppend),
		counter.Count(fixedarray.HookPosDrop),
		counter.Count(fixedarray.HookPosRemoveLast))

	if profile {
		fmt.Fprintf(out, "heap allocated while playing: %d bytes\n", heapBytes)
	}

	if resources {
		usage, err := currentUsage()
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "rss=%d bytes cpu=%.1f%%\n", usage.RSS, usage.CPUPercent)
	}

	if recorder != nil {
		return recorder.Close()
	}

	return nil
}
