package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oceanlens/oceanlens/internal/input"
)

func newRegisterCmd() *cobra.Command {
	var fullName, email, password string

	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create a new account",
		Example: `  oceanlens register -n "Ada Lovelace" -e ada@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			form := input.Register{FullName: fullName, Email: email, Password: password}
			if err := input.Validate(form); err != nil {
				return err
			}

			cfg := initConfig()
			ctx, cancel := commandContext()
			defer cancel()

			if err := newClient(cfg).Register(ctx, fullName, email, password); err != nil {
				return err
			}

			fmt.Println("Your account has been created successfully.")
			fmt.Println("Run 'oceanlens login' to start analyzing profiles.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&fullName, "name", "n", "", "full name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")

	return cmd
}
