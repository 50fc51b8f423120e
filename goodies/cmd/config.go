package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Environment variables that provide flag defaults.
const (
	envRecordPath = "GOODIES_RECORD_PATH"
	envVerbose    = "GOODIES_VERBOSE"
	envCapacity   = "GOODIES_CAPACITY"
)

var flagEnv = map[string]string{
	"record":   envRecordPath,
	"verbose":  envVerbose,
	"capacity": envCapacity,
}

// loadConfig reads the dotenv file, if any, and then fills every flag the
// user did not set from its environment variable. Variables already in the
// environment win over the file.
func loadConfig(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	for flag, env := range flagEnv {
		f := cmd.Flags().Lookup(flag)
		if f == nil || f.Changed {
			continue
		}

		v, ok := os.LookupEnv(env)
		if !ok {
			continue
		}

		if err := cmd.Flags().Set(flag, v); err != nil {
			return err
		}
	}

	return nil
}
