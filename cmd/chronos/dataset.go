package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	datasetJSON bool
	datasetDeep bool
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage datasets",
}

var datasetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all datasets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		api := newAPI()
		datasets, err := api.DS.List(context.Background())
		if err != nil {
			fatal("Error listing datasets", err)
		}

		if datasetJSON {
			type row struct {
				Name        string `json:"name"`
				Description string `json:"description"`
			}
			out := make([]row, 0, len(datasets))
			for _, ds := range datasets {
				out = append(out, row{Name: ds.Name(), Description: ds.Description})
			}
			printJSON(out)
			return
		}

		for _, ds := range datasets {
			fmt.Printf("%s\t%s\n", ds.Name(), ds.Description)
		}
	},
}

var datasetGetCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Show a dataset and its members",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		api := newAPI()
		ds, err := api.DS.Get(context.Background(), args[0])
		if err != nil {
			fatal("Error reading dataset", err)
		}

		if datasetJSON {
			type member struct {
				TSUID string `json:"tsuid"`
				FID   string `json:"funcId"`
			}
			out := struct {
				Name        string   `json:"name"`
				Description string   `json:"description"`
				TS          []member `json:"ts"`
			}{Name: ds.Name(), Description: ds.Description}
			for _, ts := range ds.Timeseries() {
				out.TS = append(out.TS, member{TSUID: ts.TSUID(), FID: ts.FID()})
			}
			printJSON(out)
			return
		}

		fmt.Printf("%s\t%s\n", ds.Name(), ds.Description)
		for _, ts := range ds.Timeseries() {
			fmt.Printf("  %s\t%s\n", ts.TSUID(), ts.FID())
		}
	},
}

var datasetDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a dataset",
	Long:  `Delete removes a dataset. With --deep, member timeseries and their metadata are erased as well.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		api := newAPI()
		if err := api.DS.Delete(context.Background(), args[0], datasetDeep); err != nil {
			fatal("Error deleting dataset", err)
		}
		fmt.Printf("Dataset deleted: %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(datasetCmd)
	datasetCmd.AddCommand(datasetListCmd)
	datasetCmd.AddCommand(datasetGetCmd)
	datasetCmd.AddCommand(datasetDeleteCmd)
	datasetCmd.PersistentFlags().BoolVar(&datasetJSON, "json", false, "Output in JSON format")
	datasetDeleteCmd.Flags().BoolVar(&datasetDeep, "deep", false, "Also delete member timeseries and their metadata")
}
