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
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/saldo-ledger/saldo"
	"github.com/saldo-ledger/saldo/config"
	"github.com/saldo-ledger/saldo/database"
	"github.com/saldo-ledger/saldo/database/memory"
)

// CLI wraps the root Cobra command for the saldo binary.
type CLI struct {
	cmd *cobra.Command
}

// saldoInstance holds the runtime service instance and its configuration,
// shared across subcommands.
type saldoInstance struct {
	saldo *saldo.Saldo
	cnf   *config.Configuration
}

func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads configuration and builds the service instance before any
// subcommand executes.
func preRun(app *saldoInstance, configFile *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig(*configFile)
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		newSaldo, err := setupSaldo(cnf)
		if err != nil {
			log.Fatal(err)
		}

		app.saldo = newSaldo
		app.cnf = cnf

		return nil
	}
}

// setupSaldo wires the service to its data source. A configured Postgres DNS
// selects the persistent store; otherwise state lives in memory for the
// lifetime of the process.
func setupSaldo(cfg *config.Configuration) (*saldo.Saldo, error) {
	if cfg.DataSource.Dns == "" {
		logrus.Warn("no data source configured, using in-memory store")
		return saldo.New(memory.NewStore()), nil
	}

	db, err := database.NewDataSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("error getting datasource: %v", err)
	}
	return saldo.New(db), nil
}

// NewCLI builds the command tree for the saldo application.
func NewCLI() *CLI {
	var configFile string
	s := &saldoInstance{}

	var rootCmd = &cobra.Command{
		Use:   "saldo",
		Short: "Single-institution account ledger",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./saldo.json", "Configuration file for saldo")
	rootCmd.PersistentPreRunE = preRun(s, &configFile)

	rootCmd.AddCommand(serverCommands(s))

	return &CLI{cmd: rootCmd}
}

func (c CLI) executeCLI() {
	if err := c.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
