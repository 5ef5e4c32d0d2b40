package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	chronos "github.com/chronos-analytics/chronos-go"
)

var (
	mdJSON  bool
	mdDType string
)

var mdCmd = &cobra.Command{
	Use:   "md",
	Short: "Manage timeseries metadata",
}

var mdGetCmd = &cobra.Command{
	Use:   "get [tsuid]",
	Short: "Show the metadata bag of a timeseries",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		api := newAPI()
		md, err := api.MD.Get(context.Background(), args[0])
		if err != nil {
			fatal("Error reading metadata", err)
		}

		if mdJSON {
			type entry struct {
				Value string `json:"value"`
				DType string `json:"dtype"`
			}
			out := make(map[string]entry, md.Len())
			for _, name := range md.Keys() {
				v, _ := md.Get(name)
				t, _ := md.Type(name)
				out[name] = entry{Value: v, DType: string(t)}
			}
			printJSON(out)
			return
		}

		for _, name := range md.Keys() {
			v, _ := md.Get(name)
			t, _ := md.Type(name)
			fmt.Printf("%s\t%s\t%s\n", name, v, t)
		}
	},
}

var mdSetCmd = &cobra.Command{
	Use:   "set [tsuid] [name] [value]",
	Short: "Create or update one metadata entry",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		api := newAPI()
		err := api.MD.SaveKey(context.Background(), args[0], args[1], args[2], chronos.MDType(mdDType))
		if err != nil {
			fatal("Error saving metadata", err)
		}
		fmt.Printf("Metadata saved: %s on %s\n", args[1], args[0])
	},
}

var mdDeleteCmd = &cobra.Command{
	Use:   "delete [tsuid] [name]",
	Short: "Delete one metadata entry",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		api := newAPI()
		if err := api.MD.Delete(context.Background(), args[0], args[1]); err != nil {
			fatal("Error deleting metadata", err)
		}
		fmt.Printf("Metadata deleted: %s on %s\n", args[1], args[0])
	},
}

func init() {
	rootCmd.AddCommand(mdCmd)
	mdCmd.AddCommand(mdGetCmd)
	mdCmd.AddCommand(mdSetCmd)
	mdCmd.AddCommand(mdDeleteCmd)
	mdGetCmd.Flags().BoolVar(&mdJSON, "json", false, "Output in JSON format")
	mdSetCmd.Flags().StringVar(&mdDType, "dtype", "string", "Value type: string, number or date")
}
