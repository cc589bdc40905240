package main

import (
	"fmt"

	"github.com/harness/ar-stats/cmd/cmdutils"
	"github.com/harness/ar-stats/internal/aql"
	"github.com/harness/ar-stats/internal/config"
	"github.com/harness/ar-stats/internal/style"
	"github.com/harness/ar-stats/util/common/errors"

	"github.com/spf13/cobra"
)

func queryCmd(f *cmdutils.Factory) *cobra.Command {
	var repositories []string

	cmd := &cobra.Command{
		Use:   "query [repository...]",
		Short: "Print the AQL query sent for each repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			repos := make([]string, 0, len(repositories)+len(args))
			repos = append(repos, repositories...)
			repos = append(repos, args...)
			if len(repos) == 0 {
				return errors.NewValidationError(config.FlagRepositoryNames, "is required")
			}

			for i, repo := range repos {
				if i > 0 {
					fmt.Fprintln(f.Out)
				}
				fmt.Fprintln(f.Out, style.DimText.Render("// "+repo))
				fmt.Fprint(f.Out, aql.ItemsByRepository(repo))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&repositories, config.FlagRepositoryNames, nil,
		"Repositories to print queries for (repeatable or comma separated)")
	return cmd
}
