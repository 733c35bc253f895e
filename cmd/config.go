package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/tasksync/internal/config"
	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/storage"
)

var configInitFlagForce bool

// configFilePath locates the config file. Tests point it at a temp dir.
var configFilePath = config.DefaultFilePath

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg"},
	Short:   "Show or create the configuration file",
	Long: `Show the effective configuration, where it is read from, or write a
file with the defaults.

Configuration is read from the config file, then overridden by
TASKSYNC_* environment variables (TASKSYNC_DATABASE, TASKSYNC_API_URL,
TASKSYNC_REQUIRE_LOGIN, ...).

Examples:
  tasksync config show
  tasksync config path
  tasksync config init`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// configPathCmd prints file locations.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file and database locations",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

// configInitCmd writes the defaults.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default values",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitFlagForce, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := ctx.Config
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	ctx.Formatter.Print(string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	dbPath := config.Global.Storage.Path
	if dbPath == "" {
		dbPath = storage.DefaultPath()
	}
	cmd.Printf("config:   %s\n", configFilePath())
	cmd.Printf("database: %s\n", dbPath)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFilePath()
	if _, err := os.Stat(path); err == nil && !configInitFlagForce {
		return errors.NewUserErrorWithField("file", path, "config file already exists",
			"Pass --force to overwrite it.")
	}
	if err := config.DefaultRuntimeConfig().WriteFile(path); err != nil {
		return errors.NewSystemErrorWithOp("write config", path, err)
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintMessage("created", path)
	}
	ctx.CLIFormatter().Success("Wrote " + path)
	return nil
}
