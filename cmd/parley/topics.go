package main

import (
	"context"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/domain"
	"github.com/parleyapp/parley-client/internal/state"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Browse and manage topics",
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the latest topics",
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		search := cmdFlags.topicsSearch

		topics := do.MustInvoke[*state.Topics](a.injector)
		var err error
		if search != "" {
			err = topics.FetchAll(ctx, search)
		} else {
			err = topics.FetchLatest(ctx)
		}
		if err != nil {
			return err
		}

		for _, topic := range topics.All() {
			marker := " "
			if topic.IsDeleted {
				marker = "x"
			}
			printf("[%s] %-24s %-40s comments=%d views=%d\n",
				marker, topic.ID, truncate(topic.Title, 40), topic.CommentCount, topic.ViewCount)
		}
		return nil
	}),
}

var topicsShowCmd = &cobra.Command{
	Use:   "show <topic-id>",
	Short: "Show a topic with its comment thread",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		topics := do.MustInvoke[*state.Topics](a.injector)
		comments := do.MustInvoke[*state.Comments](a.injector)
		thread := do.MustInvoke[*state.Thread](a.injector)

		if err := topics.FetchByID(ctx, args[0]); err != nil {
			return err
		}
		if err := comments.FetchByTopic(ctx, args[0]); err != nil {
			return err
		}

		topic := topics.Current()
		printf("%s\n%s\nby %s · %d comments\n\n", topic.Title, topic.Content, topic.Author.Username, comments.Count())

		for _, root := range thread.Roots() {
			printComment(thread, root, 0)
		}
		return nil
	}),
}

// printComment renders one comment and recurses into its replies.
func printComment(thread *state.Thread, cm domain.Comment, depth int) {
	indent := strings.Repeat("  ", depth)
	content := cm.Content
	if cm.IsDeleted {
		content = "[deleted]"
	}
	edited := ""
	if cm.IsEdited {
		edited = " (edited)"
	}
	printf("%s%s %s: %s%s\n", indent, cm.ID, cm.Author.Username, truncate(content, 72), edited)
	for _, child := range thread.Children(cm.ID) {
		printComment(thread, child, depth+1)
	}
}

var topicsCreateCmd = &cobra.Command{
	Use:   "create <category-id> <title> <content>",
	Short: "Create a topic",
	Args:  cobra.ExactArgs(3),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if _, err := requireAuth(a); err != nil {
			return err
		}

		topics := do.MustInvoke[*state.Topics](a.injector)
		topic, err := topics.Create(ctx, api.TopicInput{
			CategoryID: args[0],
			Title:      args[1],
			Content:    args[2],
			Tags:       cmdFlags.topicsTags,
		})
		if err != nil {
			return err
		}
		printf("created topic %s\n", topic.ID)
		return nil
	}),
}

var topicsDeleteCmd = &cobra.Command{
	Use:   "delete <topic-id>",
	Short: "Soft-delete a topic",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if _, err := requireAuth(a); err != nil {
			return err
		}
		topics := do.MustInvoke[*state.Topics](a.injector)
		if _, err := topics.SoftDelete(ctx, args[0]); err != nil {
			return err
		}
		printf("topic %s deleted (restorable)\n", args[0])
		return nil
	}),
}

var topicsRestoreCmd = &cobra.Command{
	Use:   "restore <topic-id>",
	Short: "Restore a soft-deleted topic",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if _, err := requireAuth(a); err != nil {
			return err
		}
		topics := do.MustInvoke[*state.Topics](a.injector)
		if _, err := topics.Restore(ctx, args[0]); err != nil {
			return err
		}
		printf("topic %s restored\n", args[0])
		return nil
	}),
}

var voteCmd = &cobra.Command{
	Use:   "vote <topic|comment> <id> <up|down>",
	Short: "Vote on a topic or comment",
	Args:  cobra.ExactArgs(3),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		auth, err := requireAuth(a)
		if err != nil {
			return err
		}

		value := domain.Upvote
		if args[2] == "down" {
			value = domain.Downvote
		}

		votes := do.MustInvoke[*state.Votes](a.injector)
		result, err := votes.Cast(ctx, api.VoteInput{
			UserID:        auth.Snapshot().User.ID,
			ReferenceID:   args[1],
			ReferenceType: domain.ReferenceType(args[0]),
			Value:         value,
		})
		if err != nil {
			return err
		}
		printf("vote %s; score is now %d\n", result.Action, votes.Score(args[1]))
		return nil
	}),
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

var cmdFlags struct {
	topicsSearch   string
	topicsTags     []string
	commentReplyTo string
	banHours       int
}

func init() {
	topicsListCmd.Flags().StringVar(&cmdFlags.topicsSearch, "search", "", "filter topics by a search term (includes deleted)")
	topicsCreateCmd.Flags().StringSliceVar(&cmdFlags.topicsTags, "tag", nil, "tags to attach (repeatable)")

	topicsCmd.AddCommand(topicsListCmd, topicsShowCmd, topicsCreateCmd, topicsDeleteCmd, topicsRestoreCmd)
	rootCmd.AddCommand(topicsCmd, voteCmd)
}
