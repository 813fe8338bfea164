package main

import (
	"github.com/spf13/cobra"

	"github.com/linkai-dev/linkai/config"
	srv "github.com/linkai-dev/linkai/internal/server"
)

// Execute runs the CLI
func Execute() {
	var root = &cobra.Command{Use: "linkai"}
	root.AddCommand(serveCMD(), indexCMD())
	_ = root.Execute()
}

func serveCMD() *cobra.Command {
	var serveAddr string
	var cfgPath string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			return srv.Run(cfg, serveAddr)
		},
	}
	serve.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serve.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return serve
}
