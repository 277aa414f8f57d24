package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/emuconfig"
)

var log = logging.Logger("emuconfig/cli")

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "emuconfig",
	Short: "Inspect emulator settings resolved from a settings file",
	Long: `emuconfig resolves the emulator settings registry from a settings file
the same way the emulator does at startup, and prints or watches the result.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := logging.LevelFromString(viper.GetString("log-level"))
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logging.SetAllLoggers(lvl)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "CLI options file (yaml, toml or json)")
	flags.String("settings", "", "emulator settings file")
	flags.String("format", "auto", "settings file format: toml, json, yaml or auto")
	flags.String("provider", emuconfig.DefaultProvider, "settings provider name")
	flags.Bool("zero-as-value", false, "treat stored false/0 as real values instead of unset")
	flags.String("log-level", "warn", "log level until the settings log_filter is applied")
	_ = viper.BindPFlags(flags)

	rootCmd.AddCommand(dumpCmd, watchCmd, labelsCmd)
}

// initConfig reads in the options file and EMUCONFIG_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Warnw("options file not loaded", "path", cfgFile, "error", err)
		}
	}

	viper.SetEnvPrefix("EMUCONFIG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// buildSyncer loads the settings file and runs the startup reload
func buildSyncer(metrics *emuconfig.Metrics) (*emuconfig.Syncer, *emuconfig.FileHost, error) {
	path := viper.GetString("settings")
	if path == "" {
		path = emuconfig.DiscoverSettingsFile(emuconfig.DefaultDiscoveryOptions("emuconfig"))
	}
	if path == "" {
		return nil, nil, errors.New("no settings file: set --settings or EMUCONFIG_SETTINGS")
	}

	host, err := emuconfig.NewFileHost(path, viper.GetString("format"))
	if err != nil {
		return nil, nil, err
	}

	policy := emuconfig.ZeroAsAbsent
	if viper.GetBool("zero-as-value") {
		policy = emuconfig.ZeroAsValue
	}

	s, err := emuconfig.NewBuilder().
		WithHost(host).
		WithProvider(viper.GetString("provider")).
		WithZeroPolicy(policy).
		WithMetrics(metrics).
		Build()
	if err != nil {
		return nil, nil, err
	}
	return s, host, nil
}
