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

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT = "5000"
)

var ConfigStore atomic.Value

type ServerConfig struct {
	Port string `json:"port" envconfig:"SALDO_SERVER_PORT"`
}

type DataSourceConfig struct {
	// Dns is the Postgres connection string. When empty the server falls
	// back to the in-memory store.
	Dns string `json:"dns" envconfig:"SALDO_DATA_SOURCE_DNS"`
}

type Configuration struct {
	ProjectName string           `json:"project_name" envconfig:"SALDO_PROJECT_NAME"`
	Server      ServerConfig     `json:"server"`
	DataSource  DataSourceConfig `json:"data_source"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}
	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("saldo", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called saldo.json with your config")
	}
	return c, nil
}

// MockConfig replaces the stored configuration, for tests.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "Saldo Ledger"
	}

	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.DataSource.Dns = strings.TrimSpace(cnf.DataSource.Dns)

	if cnf.DataSource.Dns == "" {
		log.Println("Warning: Data source DNS is empty. Accounts will be kept in memory only.")
	}

	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	return nil
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
