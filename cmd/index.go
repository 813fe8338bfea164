package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/linkai-dev/linkai/config"
	"github.com/linkai-dev/linkai/internal/engine"
	"github.com/linkai-dev/linkai/repository/mongo_repository"
)

func indexCMD() *cobra.Command {
	var cfgPath string
	var index = &cobra.Command{
		Use:   "index",
		Short: "Build the in-memory patent index once and report its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			ctx := context.Background()

			client, err := mongo_repository.Conn(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
			if err != nil {
				return err
			}
			defer client.Disconnect(ctx)

			source := mongo_repository.NewPatentSource(client, cfg.Mongo.DBName, cfg.Mongo.PatentsCollection)
			logger := log.New(log.Writer(), "[INDEX] ", log.LstdFlags)
			ix := engine.NewPatentIndex(source, logger)
			if err := ix.Rebuild(ctx); err != nil {
				return err
			}
			logger.Printf("indexed %d records from %s.%s", ix.Size(), cfg.Mongo.DBName, cfg.Mongo.PatentsCollection)
			return nil
		},
	}
	index.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return index
}
