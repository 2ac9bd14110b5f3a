package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xdg/connectproxy/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the proxy configuration",
	Long: `Manage connectproxy's configuration.

The configuration file is stored at ~/.config/connectproxy/config.yaml (or
$XDG_CONFIG_HOME/connectproxy/config.yaml if XDG_CONFIG_HOME is set).

Use the subcommands to view, locate, or initialize the configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective config",
	Long: `Print the effective configuration as YAML.

If no config file exists, shows the default configuration.`,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print config file path",
	Long:  `Print the path to the configuration file.`,
	Run:   runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default config file",
	Long: `Create the default configuration file if it doesn't exist.

If the file already exists, it is left unchanged and its path is printed.`,
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFileConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := config.MarshalFileConfig(cfg)
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}

	fmt.Print(string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) {
	fmt.Println(config.FileConfigPath())
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.FileConfigPath()

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config already exists at: %s\n", path)
		return nil
	}

	if err := config.WriteDefaultConfig(); err != nil {
		return fmt.Errorf("create config: %w", err)
	}

	fmt.Printf("Created default config at: %s\n", path)
	return nil
}
