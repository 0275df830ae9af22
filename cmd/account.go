package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oceanlens/oceanlens/internal/api"
	"github.com/oceanlens/oceanlens/internal/input"
	"github.com/oceanlens/oceanlens/internal/session"
)

func newAccountCmd() *cobra.Command {
	var fullName, email, newPassword string

	cmd := &cobra.Command{
		Use:   "account",
		Short: "Update profile details or password",
		Long: `Update the account's full name, email, or password.
Unset fields keep their current values. The current password is always
required to confirm the change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := initConfig()
			store, closeStore, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			sess, err := requireSession(store)
			if err != nil {
				return err
			}

			// Unset flags fall back to the stored profile.
			if fullName == "" {
				fullName = sess.User.FullName
			}
			if email == "" {
				email = sess.User.Email
			}

			currentPassword, err := promptPassword("Current password: ")
			if err != nil {
				return err
			}

			form := input.AccountUpdate{
				FullName:        fullName,
				Email:           email,
				CurrentPassword: currentPassword,
				NewPassword:     newPassword,
			}
			if err := input.Validate(form); err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			err = newClient(cfg).UpdateAccount(ctx, sess.Token, api.UpdateAccountRequest{
				FullName:        fullName,
				Email:           email,
				CurrentPassword: currentPassword,
				NewPassword:     newPassword,
			})
			if err != nil {
				return authFailure(store, err)
			}

			// The token stays as is; only the profile changes.
			err = store.UpdateProfile(session.User{
				ID:       sess.User.ID,
				FullName: fullName,
				Email:    email,
			})
			if err != nil {
				return err
			}

			fmt.Println("Your account info has been updated.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&fullName, "name", "n", "", "new full name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "new account email")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "new password (leave unset to keep current)")

	return cmd
}
