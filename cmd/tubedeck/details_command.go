package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/dashboard"
)

func newDetailsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "details",
		Short: "Show the video details panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, shell, err := setupDashboard()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := shell.SelectTab(dashboard.TabDetails); err != nil {
				return err
			}
			panel := shell.Details()
			panel.Load(cmd.Context())
			renderDetails(cmd.OutOrStdout(), panel)
			return nil
		},
	}

	cmd.AddCommand(newDetailsRateCommand())
	return cmd
}

func newDetailsRateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <like|dislike|none>",
		Short: "Apply a local rating to the video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, shell, err := setupDashboard()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := shell.SelectTab(dashboard.TabDetails); err != nil {
				return err
			}
			panel := shell.Details()
			panel.Load(cmd.Context())
			panel.Rate(args[0])
			renderDetails(cmd.OutOrStdout(), panel)
			return nil
		},
	}
}

func renderDetails(writer io.Writer, panel *dashboard.DetailsPanel) {
	colorize := shouldColorize(writer)
	fmt.Fprintln(writer, renderPanelStatus(panel.State(), panel.LastError(), colorize))
	if panel.State() != dashboard.StateReady {
		return
	}

	snapshot := panel.Snapshot()
	rows := [][]string{
		{"Video", snapshot.ID},
		{"Title", snapshot.Title},
		{"Channel", snapshot.ChannelTitle},
		{"Published", snapshot.PublishedAt},
		{"Privacy", snapshot.Privacy},
		{"Views", strconv.FormatInt(snapshot.ViewCount, 10)},
		{"Likes", strconv.FormatInt(snapshot.LikeCount, 10)},
		{"Comments", strconv.FormatInt(snapshot.CommentCount, 10)},
	}
	if panel.Rating() != "" {
		rows = append(rows, []string{"Your rating", panel.Rating()})
	}
	fmt.Fprintln(writer, renderTable([]string{"Field", "Value"}, rows, nil))

	if snapshot.Description != "" {
		fmt.Fprintln(writer)
		fmt.Fprintln(writer, snapshot.Description)
	}
}
