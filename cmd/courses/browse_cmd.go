package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/courses/internal/ui/browser"
	"github.com/raphi011/courses/internal/ui/progress"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "browse",
		Short:   "Browse courses interactively",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Browse the course catalog in an interactive list.

The cached catalog is shown right away while the latest one is fetched.
This is also what runs when courses is called without a subcommand.

Keys:
  ↑/↓ or k/j     move
  space, enter   toggle favorite (or the filter on the first row)
  f              only show favorites
  /              search titles and instructors
  y              copy the instructor image URL
  q              quit`,
		RunE: runBrowse,
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if !progress.Enabled(os.Stderr) {
		return errors.New("browse needs a terminal, use 'courses list' instead")
	}

	s, err := openSession(ctx, true)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	return browser.Run(ctx, s.ctrl)
}
