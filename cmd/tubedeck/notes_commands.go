package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/dashboard"
)

func newNotesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Show the private notes panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotesAction(cmd.Context(), cmd.OutOrStdout(), func(context.Context, *dashboard.NotesPanel) {})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the caller's notes for the video",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotesAction(cmd.Context(), cmd.OutOrStdout(), func(context.Context, *dashboard.NotesPanel) {})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Add a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			return runNotesAction(cmd.Context(), cmd.OutOrStdout(), func(ctx context.Context, panel *dashboard.NotesPanel) {
				panel.Add(ctx, content)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "edit <note-id> <text>",
		Short: "Replace a note's content",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID := args[0]
			content := strings.Join(args[1:], " ")
			return runNotesAction(cmd.Context(), cmd.OutOrStdout(), func(ctx context.Context, panel *dashboard.NotesPanel) {
				panel.Edit(ctx, noteID, content)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID := args[0]
			return runNotesAction(cmd.Context(), cmd.OutOrStdout(), func(ctx context.Context, panel *dashboard.NotesPanel) {
				panel.Remove(ctx, noteID)
			})
		},
	})

	return cmd
}

func runNotesAction(ctx context.Context, writer io.Writer, action func(context.Context, *dashboard.NotesPanel)) error {
	env, shell, err := setupDashboard()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := shell.SelectTab(dashboard.TabNotes); err != nil {
		return err
	}
	panel := shell.Notes()
	panel.Load(ctx)
	if panel.State() == dashboard.StateReady {
		action(ctx, panel)
	}
	renderNotes(writer, panel)
	return nil
}

func renderNotes(writer io.Writer, panel *dashboard.NotesPanel) {
	colorize := shouldColorize(writer)
	fmt.Fprintln(writer, renderPanelStatus(panel.State(), panel.LastError(), colorize))
	if panel.State() != dashboard.StateReady {
		return
	}

	items := panel.Notes()
	if len(items) == 0 {
		fmt.Fprintln(writer, "No notes yet.")
		return
	}

	rows := make([][]string, 0, len(items))
	for _, note := range items {
		rows = append(rows, []string{
			note.NoteID,
			truncate(note.Content, 60),
			formatUnixSeconds(note.CreatedAtSeconds),
			formatUnixSeconds(note.UpdatedAtSeconds),
		})
	}
	fmt.Fprintln(writer, renderTable([]string{"ID", "Note", "Created", "Updated"}, rows, nil))
}
