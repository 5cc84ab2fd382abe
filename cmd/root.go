package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/AriadneD/musicemotions/logging"
)

var (
	configFile   string
	verbose      bool
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "musicemotions",
	Short: "Emotional signature analysis for audio tracks",
	Long: `musicemotions converts an audio waveform into a per-second emotional
signature: six bounded axes (valence, energy, tension, warmth, power,
complexity) plus an averaged profile for the analysis window.

The analysis is deterministic and local to each track; it performs no
network I/O and calls no external services.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, viper.GetViper())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/musicemotions/musicemotions.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json",
		"output format (json, csv, yaml)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("output_format", rootCmd.PersistentFlags().Lookup("output"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "musicemotions"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("musicemotions")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MUSICEMOTIONS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}

	if viper.GetBool("verbose") {
		logging.GetGlobalLogger().SetLevel(logging.DebugLevel)
	}
}

// setDefaults sets configuration defaults matching the library defaults
func setDefaults() {
	viper.SetDefault("snippet_seconds", 45)
	viper.SetDefault("output_format", "json")
}

// bindFlags binds each cobra flag to its viper counterpart
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var bindErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		name := strings.ReplaceAll(f.Name, "-", "_")

		if err := v.BindPFlag(name, f); err != nil && bindErr == nil {
			bindErr = err
		}

		if !f.Changed && v.IsSet(name) {
			val := v.Get(name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil && bindErr == nil {
				bindErr = err
			}
		}
	})

	return bindErr
}
