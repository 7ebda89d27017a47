package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/traveller-backend/internal/usecase/dto"
)

func newDetailsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "details <placeId>",
		Short: "имя и ссылка на карточку места",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := a.services.Places.Details(cmd.Context(), dto.PlaceDetailsRequest{PlaceID: args[0]})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.PlaceDetailsResponse{Name: details.Name, URL: details.URL})
		},
	}
}
