package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oceanlens/oceanlens/internal/analysis"
	"github.com/oceanlens/oceanlens/internal/render"
)

func newAnalyzeCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "analyze <profile-url>",
		Short: "Analyze the personality behind a public profile",
		Example: `  oceanlens analyze https://twitter.com/somebody
  oceanlens analyze https://twitter.com/somebody --count 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profileURL := args[0]

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

			if count <= 0 {
				count = cfg.TweetCount
			}

			ctx, cancel := commandContext()
			defer cancel()

			fmt.Println("Analyzing profile, this can take a minute...")
			resp, err := newClient(cfg).Analyze(ctx, sess.Token, profileURL, count, sess.User.Email)
			if err != nil {
				return authFailure(store, err)
			}

			result, err := analysis.FromAnalyze(resp, time.Now())
			if err != nil {
				return err
			}

			fmt.Println(render.Analysis(result, 0))
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "number of posts to sample (default from config)")

	return cmd
}
