package cmd

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/s0up4200/nestoria/nestoria"
)

var (
	metadataPlace string
	echoParams    map[string]string
)

// metadataCmd represents the metadata command
var metadataCmd = &cobra.Command{
	Use:   "metadata [place]",
	Short: "Show average price data for a location",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMetadata,
}

// keywordsCmd represents the keywords command
var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List the keywords usable in searches",
	RunE:  runKeywords,
}

// echoCmd represents the echo command
var echoCmd = &cobra.Command{
	Use:   "echo",
	Short: "Send an echo request to check connectivity",
	RunE:  runEcho,
}

func init() {
	rootCmd.AddCommand(metadataCmd)
	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(echoCmd)

	metadataCmd.Flags().StringVarP(&metadataPlace, "place", "p", "", "place name")
	echoCmd.Flags().StringToStringVar(&echoParams, "param", nil, "parameter to echo back as key=value")
}

func runMetadata(cmd *cobra.Command, args []string) error {
	place := metadataPlace
	if len(args) > 0 {
		place = args[0]
	}
	if place == "" {
		return fmt.Errorf("a place name is required")
	}

	result, err := client.Metadata(context.Background(), nestoria.NewParams(nestoria.KeyPlaceName, place))
	if err != nil {
		return fmt.Errorf("metadata request failed: %w", err)
	}

	if jsonOutput {
		return printJSON(result)
	}
	printResult(result)
	return nil
}

func runKeywords(cmd *cobra.Command, args []string) error {
	labels, err := client.Keywords(context.Background())
	if err != nil {
		return fmt.Errorf("keywords request failed: %w", err)
	}

	if jsonOutput {
		return printJSON(labels)
	}

	fmt.Printf("%d keywords:\n", len(labels))
	for _, keyword := range slices.Sorted(maps.Keys(labels)) {
		fmt.Printf("  %-24s %s\n", keyword, labels[keyword])
	}
	return nil
}

func runEcho(cmd *cobra.Command, args []string) error {
	var params *nestoria.Params
	if len(echoParams) > 0 {
		params = &nestoria.Params{}
		for _, key := range slices.Sorted(maps.Keys(echoParams)) {
			params.Set(key, echoParams[key])
		}
	}

	logger.Info().Str("country", client.Country().String()).Msg("Sending echo request")

	result, err := client.Echo(context.Background(), params)
	if err != nil {
		return fmt.Errorf("echo failed: %w", err)
	}

	if jsonOutput {
		return printJSON(result)
	}
	fmt.Println("✓ Connection successful!")
	printResult(result)
	return nil
}
