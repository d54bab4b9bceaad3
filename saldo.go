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

package saldo

import (
	"github.com/saldo-ledger/saldo/database"
	"github.com/saldo-ledger/saldo/internal/lock"
)

// Saldo represents the main struct for the Saldo ledger application. All
// business invariants (balance non-negativity, atomic balance updates,
// ordered transaction history) are enforced here; persistence is delegated
// to the injected datasource.
type Saldo struct {
	datasource database.IDataSource
	locks      *lock.Registry
}

// New initializes a new instance of Saldo with the provided datasource.
//
// Parameters:
// - db database.IDataSource: The datasource for persistence operations.
//
// Returns:
// - *Saldo: A pointer to the newly created Saldo instance.
func New(db database.IDataSource) *Saldo {
	return &Saldo{
		datasource: db,
		locks:      lock.NewRegistry(),
	}
}
