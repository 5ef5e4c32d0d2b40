package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var opJSON bool

var opCmd = &cobra.Command{
	Use:   "op",
	Short: "Browse the operator catalog",
}

var opListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered operators",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		api := newAPI()
		operators, err := api.Op.List(context.Background())
		if err != nil {
			fatal("Error listing operators", err)
		}

		if opJSON {
			type row struct {
				Name   string `json:"name"`
				Label  string `json:"label"`
				Family string `json:"family"`
			}
			out := make([]row, 0, len(operators))
			for _, op := range operators {
				out = append(out, row{Name: op.Name(), Label: op.Label, Family: op.Family})
			}
			printJSON(out)
			return
		}

		for _, op := range operators {
			fmt.Printf("%s\t%s\t%s\n", op.Name(), op.Family, op.Label)
		}
	},
}

var opGetCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Show one operator with its parameters",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		api := newAPI()
		op, err := api.Op.Get(context.Background(), args[0])
		if err != nil {
			fatal("Error reading operator", err)
		}

		if opJSON {
			printJSON(struct {
				Name        string `json:"name"`
				Label       string `json:"label"`
				Family      string `json:"family"`
				Description string `json:"description"`
			}{op.Name(), op.Label, op.Family, op.Description})
			return
		}

		fmt.Printf("%s (%s)\n%s\n", op.Name(), op.Family, op.Description)
		for _, p := range op.Parameters {
			fmt.Printf("  %s\t%s\t%s\n", p.Name, p.Type, p.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(opCmd)
	opCmd.AddCommand(opListCmd)
	opCmd.AddCommand(opGetCmd)
	opCmd.PersistentFlags().BoolVar(&opJSON, "json", false, "Output in JSON format")
}
