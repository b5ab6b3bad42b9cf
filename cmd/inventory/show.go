package main

import (
	"context"
	"fmt"

	"bluepriori-dashboard/pkg/models"
	"bluepriori-dashboard/pkg/render"
	"bluepriori-dashboard/pkg/utils"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [asset-id]",
	Short: "show the vulnerabilities of one asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	assetID, err := utils.ValidateAssetID(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), waitTimeout)
	defer cancel()

	if err := s.dashboard.Select(assetID); err != nil {
		return err
	}
	view, err := s.await(ctx, detailSettled)
	if err != nil {
		return err
	}

	if err := render.Detail(cmd.OutOrStdout(), view.Detail); err != nil {
		return err
	}
	if view.Detail.Status == models.DetailFailed {
		return fmt.Errorf("failed to load vulnerabilities of asset %d", assetID)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
