/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var optLogLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kmt2es",
	Short: "Import Komoot tours into Elasticsearch",
	Long: `kmt2es reads a user's tours from the Komoot API and loads them into
Elasticsearch: one metadata document per tour, one enriched document per
GPS point (absolute timestamp, distance and speed against the previous
point). Indices are bucketed by the month of the tour's start date.

Runs are one-shot and idempotent. Documents are addressed by tour id, so
importing again overwrites instead of duplicating.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Here you will define your flags and configuration settings.
	// Cobra supports persistent flags, which, if defined here,
	// will be global for your application.
	rootCmd.PersistentFlags().StringVar(&optLogLevel, "log", "error",
		"Log level (debug, info, warning, error, critical)")

	viper.SetEnvPrefix("KMT2ES")
	viper.BindEnv("cookie")
	viper.BindEnv("elasticsearch_http_auth")
}

// LevelCritical sorts above error; slog has no critical level of its own.
const LevelCritical = slog.LevelError + 4

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warning", "warn":
		return slog.LevelWarn
	case "critical":
		return LevelCritical
	default:
		return slog.LevelError
	}
}

// setDefaultSlog configures the process logger from the --log flag.
func setDefaultSlog(cmd *cobra.Command, args []string) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(optLogLevel),
	})))
}
