package main

import (
	"context"
	"fmt"

	"github.com/fasthttp/staterouter"
	"github.com/fasthttp/staterouter/transition"
	"github.com/fasthttp/staterouter/tree"
	"github.com/spf13/cobra"
)

func (c *cli) diffCmd() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Print the routes exited and entered going from one location to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.router()
			if err != nil {
				return err
			}

			r.Dispatcher = func(context.Context, *transition.Transition) error {
				return nil
			}

			if _, err := r.Dispatch(cmd.Context(), args[0]); err != nil {
				return err
			}

			fromParams := r.CurrentParams()

			t, err := r.Match(r.Location(args[1]))
			if err != nil {
				return err
			}

			if t == nil {
				return fmt.Errorf("%w: %s", staterouter.ErrNotFound, args[1])
			}

			t = transition.New(t.From(), t.To(), t.Params(), scope)

			for _, route := range t.Disabled(fromParams) {
				fmt.Fprintf(c.out, "exit\t%s\n", route.Name())
			}

			for _, route := range t.Enabled(fromParams) {
				fmt.Fprintf(c.out, "enter\t%s\n", route.Name())
			}

			fmt.Fprintf(c.out, "junction\t%s\n", displayName(t.Junction(fromParams)))

			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "link scope used to compare ancestors")

	return cmd
}

func displayName(route *tree.Route) string {
	switch {
	case route == nil:
		return "-"
	case route.IsRoot():
		return "(root)"
	}

	return route.Name()
}
