package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/auth"
	authPostgres "github.com/frahmantamala/finance-tracker/internal/auth/postgres"
	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/finance-tracker/internal/category/postgres"
	"github.com/frahmantamala/finance-tracker/internal/core/events"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	expensePostgres "github.com/frahmantamala/finance-tracker/internal/expense/postgres"
	"github.com/frahmantamala/finance-tracker/internal/goal"
	goalPostgres "github.com/frahmantamala/finance-tracker/internal/goal/postgres"
	"github.com/frahmantamala/finance-tracker/internal/transport/rest"
)

const (
	demoEmail    = "demo@example.com"
	demoUsername = "demo"
	demoPassword = "password123"
)

var defaultCategories = []struct {
	Name string
	Desc string
}{
	{"food", "groceries and eating out"},
	{"transport", "fuel, fares and parking"},
	{"housing", "rent and maintenance"},
	{"utilities", "power, water and internet"},
	{"entertainment", "hobbies and outings"},
	{"health", "medicine and appointments"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Create a demo account with default categories, a few expenses and a savings goal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		db, sqlDB, err := openDatabase(cfg.Database)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		ctx := context.Background()
		deps := rest.Dependencies{DB: db, SQLX: sqlDB, Security: cfg.Security, Events: events.Discard, Logger: log}

		if clearData {
			if err := clearDemoAccount(ctx, db); err != nil {
				return err
			}
			fmt.Println("Cleared demo account:", demoEmail)
		}

		userID, err := ensureDemoAccount(ctx, deps)
		if err != nil {
			return err
		}

		categoryRepo := categoryPostgres.NewCategoryRepository(db)
		categories := category.NewService(categoryRepo, log)
		for _, c := range defaultCategories {
			_, err := categories.Create(ctx, userID, category.CreateCategoryDTO{Name: c.Name, Description: c.Desc})
			if errors.IsType(err, errors.ErrorTypeConflict) {
				continue
			}
			if err != nil {
				return fmt.Errorf("seed category %s: %w", c.Name, err)
			}
			fmt.Printf("Seeded category: %s\n", c.Name)
		}

		existing, err := expensePostgres.NewExpenseRepository(db).ListByOwner(ctx, userID)
		if err != nil {
			return fmt.Errorf("list expenses: %w", err)
		}
		if len(existing) > 0 {
			fmt.Println("Demo data already present")
			return nil
		}

		expenses := expense.NewService(expensePostgres.NewExpenseRepository(db), categoryRepo, events.Discard, log)
		today := time.Now().UTC()
		samples := []struct {
			cents    int64
			category string
			desc     string
			daysAgo  int
		}{
			{4550, "food", "weekly groceries", 1},
			{1200, "transport", "bus pass top-up", 3},
			{89900, "housing", "rent share", 10},
			{6475, "utilities", "electricity bill", 12},
		}
		for _, s := range samples {
			amount := money.FromCents(s.cents)
			_, err := expenses.Create(ctx, userID, expense.CreateExpenseDTO{
				Amount:      &amount,
				Category:    s.category,
				Description: s.desc,
				Date:        today.AddDate(0, 0, -s.daysAgo).Format("2006-01-02"),
			})
			if err != nil {
				return fmt.Errorf("seed expense %q: %w", s.desc, err)
			}
		}
		fmt.Printf("Seeded %d expenses\n", len(samples))

		goals := goal.NewService(goalPostgres.NewGoalRepository(db), events.Discard, log)
		target, saved := money.FromCents(150000), money.FromCents(42000)
		if _, err := goals.Create(ctx, userID, goal.CreateGoalDTO{
			Title:         "Emergency fund",
			TargetAmount:  &target,
			CurrentAmount: &saved,
			Deadline:      today.AddDate(0, 6, 0).Format("2006-01-02"),
		}); err != nil {
			return fmt.Errorf("seed goal: %w", err)
		}
		fmt.Println("Seeded goal: Emergency fund")
		return nil
	},
}

// ensureDemoAccount registers the demo user, or returns the existing id.
func ensureDemoAccount(ctx context.Context, deps rest.Dependencies) (int64, error) {
	accounts := rest.NewAccountService(deps)
	profile, err := accounts.Register(ctx, auth.RegisterDTO{Email: demoEmail, Username: demoUsername, Password: demoPassword})
	if err == nil {
		fmt.Printf("Seeded demo account: %s / %s\n", demoEmail, demoPassword)
		return profile.ID, nil
	}
	if !errors.IsType(err, errors.ErrorTypeConflict) {
		return 0, fmt.Errorf("register demo account: %w", err)
	}

	existing, err := authPostgres.NewRepository(deps.DB).GetByEmail(ctx, demoEmail)
	if err != nil {
		return 0, fmt.Errorf("lookup demo account: %w", err)
	}
	fmt.Println("Demo account already exists:", demoEmail)
	return existing.ID, nil
}

func clearDemoAccount(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Table("users").Select("id").Where("email = ?", demoEmail)
		for _, table := range []string{"goals", "expenses", "categories"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE user_id IN (?)", sub).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return tx.Exec("DELETE FROM users WHERE email = ?", demoEmail).Error
	})
}
