// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"go.uber.org/zap"

	"github.com/va2ai/bvaapi2/internal/logger"
	"github.com/va2ai/bvaapi2/internal/model"
	"github.com/va2ai/bvaapi2/internal/pipeline"
	"github.com/va2ai/bvaapi2/internal/transport/httpapi"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bvaapi",
	Short: "BVA decision search, extraction and analysis",
	Long: `bvaapi searches Board of Veterans' Appeals decisions through the
public search affiliate, extracts structured metadata from decision
documents (outcome, judge, issues, citations), and analyzes decision
text for keywords and readability.

The service holds no state of record: every request re-derives its
answer from the upstream corpus.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bvaapi %s\n", httpapi.Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.bvaapi/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.bvaapi")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match BVAAPI_*
	viper.SetEnvPrefix("BVAAPI")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file over the defaults and applies
// environment overrides for secrets.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// buildLogger creates the process logger from config.
func buildLogger(cfg *model.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

// buildPipeline assembles config, logger and pipeline for one-shot commands.
func buildPipeline() (*pipeline.Pipeline, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	p, err := pipeline.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return p, log, nil
}
