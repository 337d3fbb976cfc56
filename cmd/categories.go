package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"youtube-stats/config"
	"youtube-stats/services"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the category code table",
	Long: `Print the code to name table used for the category column. The built-in
table is used unless CATEGORY_FILE points at a JSON object of code to name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		mapper, err := services.LoadCategoryMapper(cfg.CategoryFile)
		if err != nil {
			return err
		}
		printCategories(cmd.OutOrStdout(), mapper)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func printCategories(w io.Writer, mapper *services.CategoryMapper) {
	for _, code := range mapper.Codes() {
		fmt.Fprintf(w, "%4s  %s\n", code, mapper.NameFor(code))
	}
}
