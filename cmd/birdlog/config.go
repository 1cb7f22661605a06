// ABOUTME: CLI commands for viewing and editing the birdlog config file.
// ABOUTME: Provides config path, show, get, and set; set writes the YAML file back to disk.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/birdlog/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change settings",
	Long: `View or change birdlog settings stored in config.yaml.

Keys:
  journal.path       journal file (default $XDG_DATA_HOME/birdlog/birds.json)
  map.default_lat    latitude for new sightings
  map.default_lng    longitude for new sightings
  map.default_zoom   map zoom for new sightings
  server.listen      HTTP listen address for serve
  log.level          debug, info, warn, or error
  log.pretty         true for console-formatted logs`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting with its effective value",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one stored setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Change a setting (omit value to reset it)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configGetCmd, configSetCmd)
}

// isConfigCommand reports whether cmd is config or one of its subcommands.
func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	journal, err := cfg.GetJournalPath()
	if err != nil {
		return fmt.Errorf("failed to resolve journal path: %w", err)
	}
	loc := cfg.DefaultLocation()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "journal.path      %s\n", journal)
	_, _ = fmt.Fprintf(out, "map.default_lat   %.6f\n", loc.Lat)
	_, _ = fmt.Fprintf(out, "map.default_lng   %.6f\n", loc.Lng)
	_, _ = fmt.Fprintf(out, "map.default_zoom  %.0f\n", loc.Zoom)
	_, _ = fmt.Fprintf(out, "server.listen     %s\n", cfg.GetListen())
	_, _ = fmt.Fprintf(out, "log.level         %s\n", cfg.GetLogLevel())
	_, _ = fmt.Fprintf(out, "log.pretty        %t\n", cfg.Log.Pretty)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	value, err := cfg.Get(args[0])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	value := ""
	if len(args) == 2 {
		value = args[1]
	}
	if err := cfg.Set(args[0], value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	path, err := config.GetConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Config saved.")
		return nil
	}
	if value == "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reset %s in %s\n", args[0], path)
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], value, path)
	}
	return nil
}
