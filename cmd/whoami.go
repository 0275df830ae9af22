package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current persisted identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := initConfig()
			store, closeStore, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			sess := store.Current()
			if !sess.LoggedIn() {
				fmt.Println("Not logged in.")
				return nil
			}

			fmt.Printf("%s <%s> (id %s)\n", sess.User.FullName, sess.User.Email, sess.User.ID)
			return nil
		},
	}
}
