package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oceanlens/oceanlens/internal/analysis"
	"github.com/oceanlens/oceanlens/internal/render"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show past analyses and their aggregate trait averages",
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

			records, err := newClient(cfg).History(ctx, sess.Token, sess.User.Email)
			if err != nil {
				return authFailure(store, err)
			}
			if len(records) == 0 {
				fmt.Println("No analyses yet. Run 'oceanlens analyze <profile-url>' first.")
				return nil
			}

			results := make([]analysis.Result, 0, len(records))
			for _, rec := range records {
				results = append(results, analysis.FromRecord(rec))
			}

			for i, res := range results {
				fmt.Println(render.Analysis(res, i+1))
			}
			if len(results) > 1 {
				fmt.Println(render.Averages(analysis.Aggregate(results), len(results)))
			}
			return nil
		},
	}
}
