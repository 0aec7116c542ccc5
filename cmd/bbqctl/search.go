package main

import (
	"encoding/json"
	"fmt"

	"github.com/bbqgrill/backend/internal/config"
	"github.com/bbqgrill/backend/internal/model"
	"github.com/bbqgrill/backend/internal/service"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search [zip, city or state]",
		Short: "Look up restaurant locations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			connString, err := a.cfg.ConnectionString(config.DefaultConnectionName)
			if err != nil {
				return err
			}
			var text string
			if len(args) == 1 {
				text = args[0]
			}
			result := a.newLocationService(connString).Search(cmd.Context(), text)
			return printSearchResult(cmd, result, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print found locations as JSON")
	return cmd
}

func printSearchResult(cmd *cobra.Command, result service.LocationSearchResult, asJSON bool) error {
	switch res := result.(type) {
	case service.LocationsFound:
		var locations []model.Location
		for _, t := range res.Data.Tables {
			locs, err := model.LocationsFromTable(t)
			if err != nil {
				return fmt.Errorf("decode locations: %w", err)
			}
			locations = append(locations, locs...)
		}
		if asJSON {
			data, err := json.MarshalIndent(locations, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal locations: %w", err)
			}
			cmd.Println(string(data))
			return nil
		}
		for _, l := range locations {
			cmd.Printf("%s\n  %s\n  %s\n", l.Name, l.FullAddress(), l.FormattedHours())
		}
		return nil
	case service.LocationsNotFound:
		cmd.Println(res.Message)
		return nil
	case service.LocationSearchFailed:
		return fmt.Errorf("%s", res.Message)
	default:
		return fmt.Errorf("unexpected search result %T", result)
	}
}
