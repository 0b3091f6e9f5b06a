// Package main is the entrypoint of vidgrab.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidgrab/internal/cfg"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/domain/paths"
	"vidgrab/internal/logging"

	"github.com/spf13/viper"
)

// init runs before the program begins.
func init() {
	if err := paths.InitProgFilesDirs(); err != nil {
		fmt.Printf("%s exiting with error: %v\n", consts.ProgramName, err)
		os.Exit(1)
	}
}

// main is the main entrypoint of the program.
func main() {
	startTime := time.Now()

	// ---- INIT COMMANDS ----
	if err := cfg.InitCommands(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Execute(); err != nil {
		os.Exit(1)
	}
	if !viper.GetBool(keys.Execute) {
		return // Help or similar
	}

	// Setup logging
	logFile, err := logging.SetupLogging(viper.GetString(keys.LogFile), viper.GetInt(keys.DebugLevel))
	if err != nil {
		fmt.Printf("\n\nNotice: Log file was not created\nReason: %s\n\n", err)
	}

	logging.I("%s (PID: %d) started at: %v", consts.ProgramName, os.Getpid(), startTime.Format("2006-01-02 15:04:05.00 MST"))
	logging.D(1, "Database: %s, log file: %s", viper.GetString(keys.DBFile), viper.GetString(keys.LogFile))

	// create cancellable context for shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// ---- RUN PROGRAM ----
	runErr := run(ctx)

	// ---- SHUTDOWN ----
	cancel()
	endTime := time.Now()
	logging.I("%s finished at: %v", consts.ProgramName, endTime.Format("2006-01-02 15:04:05.00 MST"))
	logging.I("Time elapsed: %.2f seconds", endTime.Sub(startTime).Seconds())

	if runErr != nil {
		logging.E("Error: %v", runErr)
	}
	if logFile != nil {
		logFile.Close()
	}
	if runErr != nil {
		os.Exit(1)
	}
}
