package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/courses/internal/course"
	"github.com/raphi011/courses/internal/log"
	"github.com/raphi011/courses/internal/output"
	"github.com/raphi011/courses/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var (
		favorites bool
		search    string
		format    string
		cached    bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List courses",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List courses in catalog order.

Fetches the catalog first unless --cached is set. Without --favorites the
saved filter (see 'courses filter') decides whether only favorites are shown.`,
		Example: `  courses list                  # Fetch and list
  courses list --favorites      # Only favorites
  courses list -s writing       # Fuzzy search titles and instructors
  courses list --cached -f json # Cached catalog as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if err := output.ValidateFormat(format); err != nil {
				return err
			}

			s, err := openSession(ctx, !cached)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			if !cached {
				if err := s.load(ctx); err != nil {
					return err
				}
			}

			onlyFavorites := favorites || s.ctrl.CurrentFilterFlag()
			courses := course.Search(s.ctrl.VisibleWith(onlyFavorites), search)
			l.Debug("listing courses", "count", len(courses), "only_favorites", onlyFavorites)

			if format != output.FormatTable {
				return out.Encode(format, courses)
			}

			if len(courses) == 0 {
				l.Println("No courses found")
				return nil
			}
			out.Print(static.RenderCourses(courses))
			return nil
		},
	}

	cmd.Flags().BoolVar(&favorites, "favorites", false, "Only show favorites")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Fuzzy search titles and instructors")
	cmd.Flags().StringVarP(&format, "format", "f", output.FormatTable, "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&cached, "cached", false, "Skip fetching and list the cached catalog")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{output.FormatTable, output.FormatJSON, output.FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
