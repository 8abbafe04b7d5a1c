package main

import (
	"context"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/markup"
	"github.com/parleyapp/parley-client/internal/state"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Post and manage comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add <topic-id> <content>",
	Short: "Comment on a topic; use --reply-to to answer another comment",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if _, err := requireAuth(a); err != nil {
			return err
		}

		comments := do.MustInvoke[*state.Comments](a.injector)
		if err := comments.FetchByTopic(ctx, args[0]); err != nil {
			return err
		}

		comment, err := comments.Create(ctx, api.CommentInput{
			TopicID: args[0],
			Content: args[1],
			ReplyTo: cmdFlags.commentReplyTo,
		})
		if err != nil {
			return err
		}
		printf("posted comment %s\n", comment.ID)
		return nil
	}),
}

var commentEditCmd = &cobra.Command{
	Use:   "edit <comment-id> <content>",
	Short: "Edit a comment",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if _, err := requireAuth(a); err != nil {
			return err
		}
		comments := do.MustInvoke[*state.Comments](a.injector)
		if _, err := comments.Update(ctx, args[0], args[1]); err != nil {
			return err
		}
		printf("comment %s updated\n", args[0])
		return nil
	}),
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete <comment-id>",
	Short: "Delete a comment and its direct replies",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if _, err := requireAuth(a); err != nil {
			return err
		}
		comments := do.MustInvoke[*state.Comments](a.injector)
		if err := comments.HardDelete(ctx, args[0]); err != nil {
			return err
		}
		printf("comment %s deleted\n", args[0])
		return nil
	}),
}

var commentPreviewCmd = &cobra.Command{
	Use:   "preview <content>",
	Short: "Render a comment draft as sanitized HTML",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		renderer := do.MustInvoke[*markup.Renderer](a.injector)
		out, err := renderer.Render(args[0])
		if err != nil {
			return err
		}
		printf("%s\n", out)
		return nil
	}),
}

func init() {
	commentAddCmd.Flags().StringVar(&cmdFlags.commentReplyTo, "reply-to", "", "comment id this replies to")
	commentCmd.AddCommand(commentAddCmd, commentEditCmd, commentDeleteCmd, commentPreviewCmd)
	rootCmd.AddCommand(commentCmd)
}
