package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oceanlens/oceanlens/internal/api"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the session and clear stored credentials",
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

			ctx, cancel := commandContext()
			defer cancel()

			err = newClient(cfg).Logout(ctx, sess.Token)
			// A 401 means the server already considers the session dead;
			// clear locally either way.
			if err != nil && !api.IsUnauthorized(err) {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}

			fmt.Println("Logged out.")
			return nil
		},
	}
}
