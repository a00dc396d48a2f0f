package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storefront-go/core/router"
	"storefront-go/resources"
)

func newRoutesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table in match order",
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := router.LoadTable(resources.Routes)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tPATTERN\tVIEW")
			for i, s := range specs {
				fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, s.Pattern, s.View)
			}
			return w.Flush()
		},
	}
}
