package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "careerpath"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "careerpath suggests up to three career paths from a short questionnaire",
}

// Execute corre el comando raíz.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		log.Fatalf("binding debug flag: %v", err)
	}
	if err := viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json")); err != nil {
		log.Fatalf("binding json flag: %v", err)
	}
}
