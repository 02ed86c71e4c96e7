package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/dashboard"
)

func newEditorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editor",
		Short: "Show the metadata editor panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, shell, err := setupDashboard()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := shell.SelectTab(dashboard.TabEditor); err != nil {
				return err
			}
			panel := shell.Editor()
			panel.Load(cmd.Context())
			renderEditor(cmd.OutOrStdout(), panel)
			return nil
		},
	}

	cmd.AddCommand(newEditorSaveCommand())
	return cmd
}

func newEditorSaveCommand() *cobra.Command {
	var (
		title       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Stage new metadata drafts and commit them locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, shell, err := setupDashboard()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := shell.SelectTab(dashboard.TabEditor); err != nil {
				return err
			}
			panel := shell.Editor()
			panel.Load(cmd.Context())
			if panel.State() == dashboard.StateReady {
				if cmd.Flags().Changed("title") {
					panel.SetTitle(title)
				}
				if cmd.Flags().Changed("description") {
					panel.SetDescription(description)
				}
				panel.Save()
			}
			renderEditor(cmd.OutOrStdout(), panel)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New video title")
	cmd.Flags().StringVar(&description, "description", "", "New video description")
	return cmd
}

func renderEditor(writer io.Writer, panel *dashboard.EditorPanel) {
	colorize := shouldColorize(writer)
	fmt.Fprintln(writer, renderPanelStatus(panel.State(), panel.LastError(), colorize))
	if panel.State() != dashboard.StateReady {
		return
	}

	rows := [][]string{
		{"Title", panel.Title()},
		{"Description", truncate(panel.Description(), 80)},
	}
	fmt.Fprintln(writer, renderTable([]string{"Draft", "Value"}, rows, nil))
}
