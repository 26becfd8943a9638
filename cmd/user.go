package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/frahmantamala/finance-tracker/internal/auth"
	"github.com/frahmantamala/finance-tracker/internal/transport/rest"
)

var (
	newUserEmail    string
	newUserName     string
	newUserPassword string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Account management commands",
}

var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "Register an account",
	Long:  `Register an account. The password is prompted for without echo when --password is omitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		password := newUserPassword
		if password == "" {
			password, err = readPassword()
			if err != nil {
				return err
			}
		}

		db, sqlDB, err := openDatabase(cfg.Database)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		bus, drainEvents := newEventBus(cfg.Events, log)
		defer drainEvents()

		accounts := rest.NewAccountService(rest.Dependencies{DB: db, SQLX: sqlDB, Security: cfg.Security, Events: bus, Logger: log})
		profile, err := accounts.Register(context.Background(), auth.RegisterDTO{
			Email:    newUserEmail,
			Username: newUserName,
			Password: password,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Created account %d: %s (%s)\n", profile.ID, profile.Email, profile.Username)
		return nil
	},
}

func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(first), nil
}

func init() {
	createUserCmd.Flags().StringVar(&newUserEmail, "email", "", "account email")
	createUserCmd.Flags().StringVar(&newUserName, "username", "", "display name")
	createUserCmd.Flags().StringVar(&newUserPassword, "password", "", "account password (prompted when empty)")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("username")

	userCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(userCmd)
}
