package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/parleyapp/parley-client/internal/di/providers"
	"github.com/parleyapp/parley-client/internal/state"
)

var watchCmd = &cobra.Command{
	Use:   "watch <topic-id>",
	Short: "Follow a topic live until interrupted",
	Long: `Joins the topic's room on the push channel and re-renders the thread
as comments are added, edited, and removed. Ctrl-C leaves the room and exits.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		topicID := args[0]

		topics := do.MustInvoke[*state.Topics](a.injector)
		comments := do.MustInvoke[*state.Comments](a.injector)
		thread := do.MustInvoke[*state.Thread](a.injector)
		channel := do.MustInvoke[*providers.PushChannelHandle](a.injector)

		if err := topics.FetchByID(ctx, topicID); err != nil {
			return err
		}
		if err := comments.FetchByTopic(ctx, topicID); err != nil {
			return err
		}
		if err := channel.JoinRoom(ctx, topicID); err != nil {
			return err
		}

		printf("watching %s — %d comments (Ctrl-C to stop)\n", topics.Current().Title, comments.Count())

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		last := comments.Count()
		for {
			select {
			case <-quit:
				if err := channel.LeaveRoom(ctx, topicID); err != nil {
					a.log.Warn("failed to leave room", "error", err)
				}
				printf("\nstopped watching\n")
				return nil
			case <-channel.Done():
				printf("\npush channel lost; reconnect budget exhausted\n")
				return nil
			case <-tick():
				if count := comments.Count(); count != last {
					last = count
					printf("--- %d comments ---\n", count)
					for _, root := range thread.Roots() {
						printComment(thread, root, 0)
					}
				}
			}
		}
	}),
}

// tick paces the redraw loop.
func tick() <-chan time.Time {
	return time.After(time.Second)
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
