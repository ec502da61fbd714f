package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/courses/internal/output"
)

func newFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "filter [on|off]",
		Short:     "Show or set the favorites-only filter",
		GroupID:   GroupCore,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		Long: `Show or set whether only favorites are listed.

The filter is saved and applies to browse and list until changed.`,
		Example: `  courses filter       # Print on or off
  courses filter on    # Only show favorites`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			s, err := openSession(ctx, false)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			if len(args) == 0 {
				out.Println(onOff(s.ctrl.CurrentFilterFlag()))
				return nil
			}

			v, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			if err := s.ctrl.SetFilterFlag(v); err != nil {
				return fmt.Errorf("save filter: %w", err)
			}
			out.Println(onOff(v))
			return nil
		},
	}
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid filter value %q: must be on or off", s)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
