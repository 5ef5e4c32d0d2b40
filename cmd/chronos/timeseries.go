package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	tsJSON bool
	tsSD   int64
	tsED   int64
)

var tsCmd = &cobra.Command{
	Use:   "ts",
	Short: "Manage timeseries",
}

var tsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all timeseries references",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		api := newAPI()
		series, err := api.TS.List(context.Background())
		if err != nil {
			fatal("Error listing timeseries", err)
		}

		if tsJSON {
			type row struct {
				TSUID string `json:"tsuid"`
				FID   string `json:"funcId"`
			}
			out := make([]row, 0, len(series))
			for _, ts := range series {
				out = append(out, row{TSUID: ts.TSUID(), FID: ts.FID()})
			}
			printJSON(out)
			return
		}

		for _, ts := range series {
			fmt.Printf("%s\t%s\n", ts.TSUID(), ts.FID())
		}
	},
}

var tsGetCmd = &cobra.Command{
	Use:   "get [fid]",
	Short: "Show a timeseries with its metadata and points",
	Long: `Get fetches a timeseries by functional identifier and prints its
points. The date range defaults to the intrinsic start and end metadata
and can be narrowed with --sd and --ed (epoch milliseconds).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		api := newAPI()
		ts, err := api.TS.GetByFID(ctx, args[0])
		if err != nil {
			fatal("Error reading timeseries", err)
		}
		if err := ts.Fetch(ctx, tsSD, tsED); err != nil {
			fatal("Error fetching points", err)
		}

		if tsJSON {
			type point struct {
				Timestamp int64   `json:"timestamp"`
				Value     float64 `json:"value"`
			}
			out := struct {
				TSUID    string            `json:"tsuid"`
				FID      string            `json:"funcId"`
				Metadata map[string]string `json:"metadata"`
				Points   []point           `json:"points"`
			}{TSUID: ts.TSUID(), FID: ts.FID(), Metadata: map[string]string{}}
			for _, name := range ts.Metadata().Keys() {
				v, _ := ts.Metadata().Value(name)
				out.Metadata[name] = fmt.Sprint(v)
			}
			for _, p := range ts.Points {
				out.Points = append(out.Points, point{Timestamp: p.Timestamp, Value: p.Value})
			}
			printJSON(out)
			return
		}

		fmt.Printf("%s\t%s\n", ts.TSUID(), ts.FID())
		for _, p := range ts.Points {
			fmt.Printf("%d\t%g\n", p.Timestamp, p.Value)
		}
	},
}

var tsDeleteCmd = &cobra.Command{
	Use:   "delete [fid]",
	Short: "Delete a timeseries",
	Long:  `Delete removes the timeseries record, its metadata and its functional identifier.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		api := newAPI()
		ts, err := api.TS.GetByFID(ctx, args[0])
		if err != nil {
			fatal("Error resolving timeseries", err)
		}
		if err := api.TS.Delete(ctx, ts); err != nil {
			fatal("Error deleting timeseries", err)
		}
		fmt.Printf("Timeseries deleted: %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(tsCmd)
	tsCmd.AddCommand(tsListCmd)
	tsCmd.AddCommand(tsGetCmd)
	tsCmd.AddCommand(tsDeleteCmd)
	tsCmd.PersistentFlags().BoolVar(&tsJSON, "json", false, "Output in JSON format")
	tsGetCmd.Flags().Int64Var(&tsSD, "sd", 0, "Start date in epoch milliseconds")
	tsGetCmd.Flags().Int64Var(&tsED, "ed", 0, "End date in epoch milliseconds")
}
