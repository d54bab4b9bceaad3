/*
Copyright 2025 Saldo Ledger Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/saldo-ledger/saldo/api"
	"github.com/saldo-ledger/saldo/config"
)

func initializeRouter(s *saldoInstance) *gin.Engine {
	return api.NewAPI(s.saldo).Router()
}

// startServer runs the HTTP server until the process receives SIGINT or
// SIGTERM, then drains in-flight requests before returning.
func startServer(router *gin.Engine, cfg config.ServerConfig) error {
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// serverCommands returns the Cobra command that starts the ledger API server.
func serverCommands(s *saldoInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "start saldo server",
		Run: func(cmd *cobra.Command, args []string) {
			router := initializeRouter(s)

			cfg, err := config.Fetch()
			if err != nil {
				log.Fatal(err)
			}

			if err := startServer(router, cfg.Server); err != nil {
				log.Fatal(err)
			}
		},
	}

	return cmd
}
