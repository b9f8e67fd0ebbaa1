package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/peekknuf/eda-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage eda configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the active configuration to a file",
	Long: `Write the active configuration (defaults merged with any loaded
config file and EDA_* environment variables) to a YAML file. Defaults
to ~/.eda.yaml, or the path given with --config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, err := writeConfigFile(cfgFile)
		if err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", dest)
		return nil
	},
}

// writeConfigFile saves the active config to dest, or to ~/.eda.yaml
// when dest is empty, and reports where it ended up.
func writeConfigFile(dest string) (string, error) {
	if err := cfgpkg.Save(cfg, dest); err != nil {
		return "", err
	}
	if dest == "" {
		dest = "~/.eda.yaml"
	}
	return dest, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}
