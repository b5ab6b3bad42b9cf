package main

import (
	"context"
	"errors"
	"fmt"

	"bluepriori-dashboard/pkg/models"
	"bluepriori-dashboard/pkg/render"
	service "bluepriori-dashboard/pkg/services"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list one page of assets with the priority aggregates",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listPage int
	listSort string
	listAsc  bool
)

func runList(cmd *cobra.Command, _ []string) error {
	if _, ok := models.ParseSortKey(listSort); !ok {
		return fmt.Errorf("unknown sort key %q", listSort)
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), waitTimeout)
	defer cancel()

	if err := s.dashboard.Start(); err != nil {
		return err
	}
	view, err := s.await(ctx, pageSettled)
	if err != nil {
		return err
	}
	if !view.Loaded {
		return errors.New(service.FetchErrorMessage)
	}

	if listPage != view.Pagination.Page {
		moved, err := s.dashboard.GoTo(listPage)
		if err != nil {
			return err
		}
		if !moved {
			return fmt.Errorf("page %d is out of range 1..%d", listPage, view.Pagination.Pages)
		}
		if _, err := s.await(ctx, pageSettled); err != nil {
			return err
		}
	}

	if err := applySort(s.dashboard, models.SortKey(listSort), listAsc); err != nil {
		return err
	}

	view, err = s.dashboard.View()
	if err != nil {
		return err
	}
	return render.View(cmd.OutOrStdout(), view)
}

// applySort toggles key until the requested direction is active
func applySort(d *service.Dashboard, key models.SortKey, asc bool) error {
	want := models.SortState{Key: key, Direction: models.Descending}
	if asc {
		want.Direction = models.Ascending
	}

	for i := 0; i < 2; i++ {
		view, err := d.View()
		if err != nil {
			return err
		}
		if view.Sort == want {
			return nil
		}
		if _, err := d.Sort(string(key)); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page to display")
	listCmd.Flags().StringVarP(&listSort, "sort", "s", string(models.SortByPriorityScore), "column to sort by")
	listCmd.Flags().BoolVarP(&listAsc, "asc", "a", false, "sort ascending instead of descending")

	rootCmd.AddCommand(listCmd)
}
