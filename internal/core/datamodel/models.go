// Package datamodel lists the GORM models persisted by the service.
package datamodel

import (
	"github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
	"github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/finance-tracker/internal/core/datamodel/goal"
	"github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
)

// Models returns every table model in dependency order, for AutoMigrate on
// drivers that do not run the SQL migrations.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&category.Category{},
		&expense.Expense{},
		&goal.Goal{},
	}
}
