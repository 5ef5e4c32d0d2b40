package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	tableJSON    bool
	tablePattern string
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Manage tables",
}

var tableListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tables, optionally filtered by a name pattern",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		api := newAPI()
		tables, err := api.Table.List(context.Background(), tablePattern)
		if err != nil {
			fatal("Error listing tables", err)
		}

		if tableJSON {
			type row struct {
				Name  string `json:"name"`
				Title string `json:"title"`
			}
			out := make([]row, 0, len(tables))
			for _, t := range tables {
				out = append(out, row{Name: t.Name(), Title: t.Title})
			}
			printJSON(out)
			return
		}

		for _, t := range tables {
			fmt.Printf("%s\t%s\n", t.Name(), t.Title)
		}
	},
}

var tableGetCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Show a table with its content",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		api := newAPI()
		t, err := api.Table.Get(context.Background(), args[0])
		if err != nil {
			fatal("Error reading table", err)
		}

		if tableJSON {
			type column struct {
				Name  string `json:"name"`
				DType string `json:"dtype"`
			}
			out := struct {
				Name    string     `json:"name"`
				Title   string     `json:"title"`
				Columns []column   `json:"columns"`
				Rows    [][]string `json:"rows"`
			}{Name: t.Name(), Title: t.Title, Rows: t.Rows()}
			for _, c := range t.Columns() {
				out.Columns = append(out.Columns, column{Name: c.Name, DType: string(c.DType)})
			}
			printJSON(out)
			return
		}

		headers := make([]string, 0, len(t.Columns()))
		for _, c := range t.Columns() {
			headers = append(headers, c.Name)
		}
		fmt.Println(strings.Join(headers, "\t"))
		for _, row := range t.Rows() {
			fmt.Println(strings.Join(row, "\t"))
		}
	},
}

var tableDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		api := newAPI()
		if err := api.Table.Delete(context.Background(), args[0]); err != nil {
			fatal("Error deleting table", err)
		}
		fmt.Printf("Table deleted: %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.AddCommand(tableListCmd)
	tableCmd.AddCommand(tableGetCmd)
	tableCmd.AddCommand(tableDeleteCmd)
	tableCmd.PersistentFlags().BoolVar(&tableJSON, "json", false, "Output in JSON format")
	tableListCmd.Flags().StringVar(&tablePattern, "pattern", "", "Name pattern with * wildcards")
}
