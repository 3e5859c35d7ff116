package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var envFlag string

	rootCmd := &cobra.Command{
		Use:           "shortreel",
		Short:         "Turn a script, a voiceover and scene images into a captioned short video",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "config.yaml", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", ".env", "Dotenv file with GEMINI_API_KEYS")

	load := func() (*app, error) {
		return newApp(configFlag, envFlag)
	}

	rootCmd.AddCommand(newServeCommand(load))
	rootCmd.AddCommand(newProjectCommand(load))
	rootCmd.AddCommand(newVoiceoverCommand(load))
	rootCmd.AddCommand(newImagesCommand(load))
	rootCmd.AddCommand(newRenderCommand(load))
	rootCmd.AddCommand(newShowCommand(load))

	return rootCmd
}
