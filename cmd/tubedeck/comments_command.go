package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/dashboard"
)

func newCommentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Show the comments panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentsAction(cmd.Context(), cmd.OutOrStdout(), func(context.Context, *dashboard.CommentsPanel) {})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "post <text>",
		Short: "Post an unconfirmed comment into the local sequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return runCommentsAction(cmd.Context(), cmd.OutOrStdout(), func(_ context.Context, panel *dashboard.CommentsPanel) {
				panel.Post(text)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <comment-id>",
		Short: "Remove a comment from the local sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commentID := args[0]
			return runCommentsAction(cmd.Context(), cmd.OutOrStdout(), func(_ context.Context, panel *dashboard.CommentsPanel) {
				panel.Delete(commentID)
			})
		},
	})

	return cmd
}

// runCommentsAction loads the panel, applies one action against the loaded
// sequence and renders the result.
func runCommentsAction(ctx context.Context, writer io.Writer, action func(context.Context, *dashboard.CommentsPanel)) error {
	env, shell, err := setupDashboard()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := shell.SelectTab(dashboard.TabComments); err != nil {
		return err
	}
	panel := shell.Comments()
	panel.Load(ctx)
	if panel.State() == dashboard.StateReady {
		action(ctx, panel)
	}
	renderComments(writer, panel)
	return nil
}

func renderComments(writer io.Writer, panel *dashboard.CommentsPanel) {
	colorize := shouldColorize(writer)
	fmt.Fprintln(writer, renderPanelStatus(panel.State(), panel.LastError(), colorize))
	if panel.State() != dashboard.StateReady {
		return
	}

	comments := panel.Comments()
	if len(comments) == 0 {
		fmt.Fprintln(writer, "No comments.")
		return
	}

	rows := make([][]string, 0, len(comments))
	for _, comment := range comments {
		author := comment.Author
		if comment.Local {
			author += " (unconfirmed)"
		}
		rows = append(rows, []string{
			comment.ID,
			author,
			truncate(comment.Text, 60),
			comment.PublishedAt,
			strconv.FormatInt(comment.LikeCount, 10),
			strconv.FormatInt(comment.ReplyCount, 10),
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight}
	fmt.Fprintln(writer, renderTable([]string{"ID", "Author", "Comment", "Published", "Likes", "Replies"}, rows, aligns))
}
