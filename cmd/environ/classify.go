package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tanmay1202/EnviRon/pkg/client"
)

func classifyCmd() *cobra.Command {
	var (
		lat float64
		lng float64
	)

	cmd := &cobra.Command{
		Use:   "classify <image>",
		Short: "Classify a waste item photo",
		Long: `Classify a photo of a waste item and print disposal guidance.

The image must be a JPEG or PNG of at most 5 MiB. When coordinates are
supplied, nearby disposal facilities are listed with the result.

Examples:
  environ classify bottle.jpg
  environ classify bottle.jpg --lat 40.71 --lng -74.00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := resolveUserID()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			orch := client.NewOrchestrator(apiClient(), user, slog.Default())
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
				orch.SetLocation(&client.LatLng{Lat: lat, Lng: lng})
			}

			if err := orch.SelectImage(data); err != nil {
				return err
			}

			result, err := orch.Classify(cmd.Context())
			if err != nil {
				if errors.Is(err, client.ErrAuthenticationRequired) {
					return fmt.Errorf("%w: sign in and set %s", err, envToken)
				}
				return err
			}

			printResult(cmd, result, orch.NewBadge())
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude for facility lookup")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude for facility lookup")

	return cmd
}

func printResult(cmd *cobra.Command, result *client.ClassifyResponse, badge string) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Waste type:   %s\n", result.WasteType)
	fmt.Fprintf(out, "Instructions: %s\n", result.Instructions)
	fmt.Fprintf(out, "Tip:          %s\n", result.Tip)

	if len(result.Labels) > 0 {
		fmt.Fprintf(out, "Labels:       %v\n", result.Labels)
	}

	if len(result.Locations) > 0 {
		fmt.Fprintln(out, "\nNearby facilities:")
		for _, f := range result.Locations {
			fmt.Fprintf(out, "  %s, %s (rating %s)\n", f.Name, f.Address, f.Rating)
		}
	}

	if badge != "" {
		fmt.Fprintf(out, "\nNew badge earned: %s\n", badge)
	}
}
