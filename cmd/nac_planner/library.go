package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/nac-planner/internal/library"
	"github.com/jonathan/nac-planner/internal/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse or check the reference library",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library items of one kind",
	Long:  "Lists pain points, use cases or requirements, optionally filtered by a search query and an exact category.",
	RunE:  runLibraryList,
}

var libraryCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a library JSON file against the library schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryCheck,
}

var (
	libraryKind     string
	libraryQuery    string
	libraryCategory string
	libraryJSON     bool
)

func init() {
	libraryListCmd.Flags().StringVarP(&libraryKind, "kind", "k", "use-cases", "pain-points, use-cases or requirements")
	libraryListCmd.Flags().StringVarP(&libraryQuery, "query", "q", "", "Case-insensitive search over name, description and tags")
	libraryListCmd.Flags().StringVar(&libraryCategory, "category", "", "Exact category filter")
	libraryListCmd.Flags().BoolVar(&libraryJSON, "json", false, "Print items as JSON")

	libraryCmd.AddCommand(libraryListCmd, libraryCheckCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	kind, err := parseKind(libraryKind)
	if err != nil {
		return err
	}
	lib, err := loadLibrary(cmd.Context())
	if err != nil {
		return err
	}

	items := lib.Filter(kind, libraryQuery, libraryCategory)
	if items == nil {
		items = []types.LibraryItem{}
	}
	if libraryJSON {
		return writeJSON(cmd.OutOrStdout(), "", items)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCATEGORY")
	for _, item := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", item.ItemID(), item.DisplayName(), item.ItemCategory())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d item(s)\n", len(items))
	return nil
}

func runLibraryCheck(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read library file: %w", err)
	}
	lib, err := library.Parse(data, args[0])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Library valid: %d pain point(s), %d use case(s), %d requirement(s)\n",
		len(lib.PainPoints), len(lib.UseCases), len(lib.Requirements))
	return nil
}
