package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/config"
)

var (
	cfgFile string
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tubedeck",
		Short:         "TubeDeck creator dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	setupFlags(rootCmd)

	rootCmd.AddCommand(newLoginCommand())
	rootCmd.AddCommand(newDetailsCommand())
	rootCmd.AddCommand(newCommentsCommand())
	rootCmd.AddCommand(newEditorCommand())
	rootCmd.AddCommand(newNotesCommand())
	rootCmd.AddCommand(newActivityCommand())

	return rootCmd
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("video-id", "", "Video identifier the dashboard operates on")
	cmd.PersistentFlags().String("session-token", "", "Session token from tubedeck login (empty runs signed out)")
	cmd.PersistentFlags().String("proxy-endpoint", defaults.GetString("proxy.endpoint"), "Proxy function URL")
	cmd.PersistentFlags().String("database-path", defaults.GetString("database.path"), "SQLite database path")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")

	bindFlag(cmd, "video.id", "video-id")
	bindFlag(cmd, "session.token", "session-token")
	bindFlag(cmd, "proxy.endpoint", "proxy-endpoint")
	bindFlag(cmd, "database.path", "database-path")
	bindFlag(cmd, "log.level", "log-level")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if cfgFile != "" && errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}
