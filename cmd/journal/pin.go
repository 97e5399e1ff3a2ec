package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Samik0007/JournalAppPersonal/pkg/auth"
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Manage the 4-digit access PIN",
	Long: `Set up, verify and change the journal's 4-digit PIN. The PIN gates access
in interactive frontends; it is not an encryption key.`,
}

var pinSetupCmd = &cobra.Command{
	Use:   "setup [pin]",
	Short: "Set the PIN for the first time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		_, err = auth.CreateUserWithPin(context.Background(), dbConn, args[0])
		if errors.Is(err, auth.ErrInvalidPin) {
			return fmt.Errorf("the PIN must be exactly 4 digits")
		}
		if errors.Is(err, auth.ErrUserExists) {
			return fmt.Errorf("a PIN is already set; use 'journal pin change' instead")
		}
		if err != nil {
			return fmt.Errorf("failed to set PIN: %w", err)
		}

		fmt.Println("PIN set.")
		return nil
	},
}

var pinVerifyCmd = &cobra.Command{
	Use:   "verify [pin]",
	Short: "Check a PIN against the stored one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx := context.Background()
		mode, err := auth.GetAuthMode(ctx, dbConn)
		if err != nil {
			return fmt.Errorf("failed to check PIN state: %w", err)
		}
		if mode == auth.SetupPin {
			return fmt.Errorf("no PIN is set; run 'journal pin setup' first")
		}

		ok, err := auth.VerifyPin(ctx, dbConn, args[0])
		if err != nil {
			return fmt.Errorf("failed to verify PIN: %w", err)
		}
		if !ok {
			return fmt.Errorf("PIN does not match")
		}

		fmt.Println("PIN OK.")
		return nil
	},
}

var pinChangeCmd = &cobra.Command{
	Use:   "change [current-pin] [new-pin]",
	Short: "Change the PIN",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		err = auth.ChangePin(context.Background(), dbConn, args[0], args[1])
		switch {
		case errors.Is(err, auth.ErrInvalidPin):
			return fmt.Errorf("PINs must be exactly 4 digits")
		case errors.Is(err, auth.ErrNoUser):
			return fmt.Errorf("no PIN is set; run 'journal pin setup' first")
		case errors.Is(err, auth.ErrWrongPin):
			return fmt.Errorf("current PIN is incorrect")
		case err != nil:
			return fmt.Errorf("failed to change PIN: %w", err)
		}

		fmt.Println("PIN changed.")
		return nil
	},
}

func init() {
	pinCmd.AddCommand(pinSetupCmd)
	pinCmd.AddCommand(pinVerifyCmd)
	pinCmd.AddCommand(pinChangeCmd)
}
