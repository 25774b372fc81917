package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	outputFormat string
	verbosity    int
	logLevel     string
	logJSON      bool
	serverURL    string
	apiKey       string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chrono",
	Short: "CLI for the chronograph timing utility",
	Long:  `chrono demonstrates the chronograph library: it times labeled code segments, reports split and total elapsed times, and can serve the process-wide registry over HTTP with Prometheus metrics.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chrono/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "table", "output format: table, json or yaml")
	rootCmd.PersistentFlags().IntVar(&verbosity, "verbosity", 0, "chronograph verbosity: 0 silent, 1 summary, 2 verbose")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "chrono serve URL (default from config or http://localhost:8080)")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		viper.AddConfigPath(filepath.Join(home, ".chrono"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("chrono")
	viper.AutomaticEnv()
	viper.BindEnv("api_key", "CHRONO_API_KEY")
	viper.BindEnv("server_url", "CHRONO_SERVER_URL")

	// The config file is optional; bound environment variables apply
	// either way
	_ = viper.ReadInConfig()

	if serverURL == "" {
		serverURL = viper.GetString("server_url")
	}
	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}
}
