package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/raphi011/courses/internal/catalog"
	"github.com/raphi011/courses/internal/log"
	"github.com/raphi011/courses/internal/output"
	"github.com/raphi011/courses/internal/ui/styles"
)

func newFavCmd() *cobra.Command {
	return newFavoriteCmd(true)
}

func newUnfavCmd() *cobra.Command {
	return newFavoriteCmd(false)
}

func newFavoriteCmd(desired bool) *cobra.Command {
	use, short, example := "fav <id>...", "Mark courses as favorites", "  courses fav 12 17"
	if !desired {
		use, short, example = "unfav <id>...", "Remove courses from favorites", "  courses unfav 12"
	}

	return &cobra.Command{
		Use:     use,
		Short:   short,
		GroupID: GroupCore,
		Args:    cobra.MinimumNArgs(1),
		Long: short + `.

The catalog is fetched first, then each change is saved locally and sent to
the server in the background. Ids not in the catalog are skipped. The command
waits up to drain_timeout for the server requests before exiting.`,
		Example: example,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			s, err := openSession(ctx, true)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			if err := s.load(ctx); err != nil {
				return err
			}

			for _, id := range ids {
				c, err := s.ctrl.Lookup(id)
				if errors.Is(err, catalog.ErrNotFound) {
					l.Printf("Skipped %d: not in catalog\n", id)
					continue
				}
				if err := s.ctrl.ApplyFavoriteIntent(ctx, id, desired); err != nil {
					return fmt.Errorf("save favorite %d: %w", id, err)
				}
				out.Printf("%s %s\n", styles.FormatFavorite(desired), c.Title)
			}
			return nil
		},
	}
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid course id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
