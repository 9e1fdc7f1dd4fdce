package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/nac-planner/internal/vendors"
)

var vendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List the vendors configuration generation supports",
	RunE:  runVendors,
}

var vendorsCategory string

func init() {
	vendorsCmd.Flags().StringVar(&vendorsCategory, "category", "", "switching, wireless or firewall")
	rootCmd.AddCommand(vendorsCmd)
}

func runVendors(cmd *cobra.Command, _ []string) error {
	list := vendors.All()
	if vendorsCategory != "" {
		list = vendors.ByCategory(vendors.Category(vendorsCategory))
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tSYNTAX\tMODELS")
	for _, v := range list {
		models := strings.Join(v.Models, ", ")
		if models == "" {
			models = "any"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Category, v.Syntax, models)
	}
	return tw.Flush()
}
