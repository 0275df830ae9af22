package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oceanlens/oceanlens/internal/input"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		Example: `  oceanlens login -e ada@example.com
  oceanlens login --email ada@example.com --password <pw>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			if err := input.Validate(input.Login{Email: email, Password: password}); err != nil {
				return err
			}

			cfg := initConfig()
			store, closeStore, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			ctx, cancel := commandContext()
			defer cancel()

			res, err := newClient(cfg).Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := store.Establish(res.User, res.Token); err != nil {
				return err
			}

			fmt.Printf("Logged in as %s <%s>\n", res.User.FullName, res.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	cmd.MarkFlagRequired("email")

	return cmd
}
