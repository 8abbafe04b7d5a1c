package push

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/parleyapp/parley-client/internal/domain"
	"github.com/parleyapp/parley-client/internal/id"
)

const controlTimeout = 10 * time.Second

// TokenSource provides the bearer credential attached to the stream and
// control requests.
type TokenSource interface {
	Token() string
}

// ReconnectPolicy bounds automatic reconnection. It is explicit
// configuration, not a hidden default.
type ReconnectPolicy struct {
	// MaxAttempts is the number of consecutive failed connects tolerated
	// before the channel gives up.
	MaxAttempts int
	// Delay is the fixed pause between attempts.
	Delay time.Duration
}

// Config holds push channel settings.
type Config struct {
	// URL is the event stream endpoint. Control calls (joinTopic,
	// leaveTopic) are POSTs under the same path.
	URL       string
	Reconnect ReconnectPolicy
}

// Client maintains one long-lived event stream per application instance and
// at most one active topic room.
type Client struct {
	id       string
	stream   *http.Client // no timeout: the stream is long-lived
	control  *http.Client
	url      string
	policy   ReconnectPolicy
	session  TokenSource
	handlers Handlers
	logger   *slog.Logger

	mu     sync.Mutex
	room   string
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a push channel client. Connect must be called before events
// are delivered.
func New(cfg Config, session TokenSource, handlers Handlers, logger *slog.Logger) *Client {
	return &Client{
		id:       id.MustGenerate("chan"),
		stream:   &http.Client{},
		control:  &http.Client{Timeout: controlTimeout},
		url:      strings.TrimSuffix(cfg.URL, "/"),
		policy:   cfg.Reconnect,
		session:  session,
		handlers: handlers,
		logger:   logger,
	}
}

// Connect starts the event stream in the background. Reconnection follows
// the configured policy; when attempts are exhausted the channel stops and
// Done is closed.
func (c *Client) Connect(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return // already connected
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	c.mu.Unlock()

	go c.run(runCtx)
}

// Done is closed when the stream loop has exited, either through Close or
// after exhausting reconnect attempts.
func (c *Client) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// run is the connect/reconnect loop.
func (c *Client) run(ctx context.Context) {
	defer close(c.done)

	attempts := 0
	for {
		if ctx.Err() != nil {
			return
		}

		connected, err := c.streamOnce(ctx)
		if ctx.Err() != nil {
			return
		}
		if connected {
			// A stream that was established and later dropped resets the
			// failure budget.
			attempts = 0
		} else {
			attempts++
			if attempts >= c.policy.MaxAttempts {
				c.logger.Error("push channel giving up",
					slog.Int("attempts", attempts),
					slog.String("error", fmt.Sprint(err)))
				return
			}
		}

		c.logger.Warn("push channel disconnected, retrying",
			slog.Int("attempt", attempts),
			slog.Duration("delay", c.policy.Delay))

		select {
		case <-time.After(c.policy.Delay):
		case <-ctx.Done():
			return
		}
	}
}

// streamOnce opens the stream and pumps events until it drops.
// The connected return reports whether the server accepted the stream.
func (c *Client) streamOnce(ctx context.Context) (connected bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return false, fmt.Errorf("create stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("X-Channel-ID", c.id)
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.stream.Do(req)
	if err != nil {
		return false, fmt.Errorf("connect stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("stream rejected with status %d", resp.StatusCode)
	}

	c.logger.Info("push channel connected", slog.String("channel_id", c.id))

	// Re-enter the active room after a reconnect.
	c.mu.Lock()
	room := c.room
	c.mu.Unlock()
	if room != "" {
		if err := c.emitControl(ctx, "joinTopic", room); err != nil {
			c.logger.Warn("failed to rejoin room after reconnect",
				slog.String("topic_id", room),
				slog.String("error", err.Error()))
		}
	}

	return true, c.pump(resp.Body)
}

// pump parses the event stream line protocol and dispatches events.
func (c *Client) pump(body io.Reader) error {
	reader := bufio.NewReader(body)
	var eventType, data string

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read stream: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			if eventType != "" {
				c.dispatch(EventType(eventType), []byte(data))
			}
			eventType, data = "", ""
		case strings.HasPrefix(line, ":"):
			// Heartbeat/comment line, keepalive only.
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
}

// dispatch decodes one event and hands it to the matching handler.
func (c *Client) dispatch(eventType EventType, data []byte) {
	switch eventType {
	case EventCommentAdded, EventCommentUpdated:
		var comment domain.Comment
		if err := json.Unmarshal(data, &comment); err != nil {
			c.logger.Error("bad comment event payload",
				slog.String("event_type", string(eventType)),
				slog.String("error", err.Error()))
			return
		}
		if eventType == EventCommentAdded {
			if c.handlers.CommentAdded != nil {
				c.handlers.CommentAdded(comment)
			}
		} else if c.handlers.CommentUpdated != nil {
			c.handlers.CommentUpdated(comment)
		}

	case EventCommentDeleted:
		var payload CommentDeletedPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			c.logger.Error("bad delete event payload", slog.String("error", err.Error()))
			return
		}
		if c.handlers.CommentDeleted != nil {
			c.handlers.CommentDeleted(payload.ID)
		}

	default:
		c.logger.Debug("ignoring unknown event", slog.String("event_type", string(eventType)))
	}
}

// JoinRoom scopes event delivery to one topic. Joining while a different
// room is active leaves the previous room first; at most one room is active
// per channel instance.
func (c *Client) JoinRoom(ctx context.Context, topicID string) error {
	c.mu.Lock()
	previous := c.room
	c.mu.Unlock()

	if previous == topicID {
		return nil
	}
	if previous != "" {
		if err := c.emitControl(ctx, "leaveTopic", previous); err != nil {
			return fmt.Errorf("leave previous room: %w", err)
		}
	}
	if err := c.emitControl(ctx, "joinTopic", topicID); err != nil {
		return err
	}

	c.mu.Lock()
	c.room = topicID
	c.mu.Unlock()

	c.logger.Debug("joined room", slog.String("topic_id", topicID))
	return nil
}

// LeaveRoom releases the topic subscription. Must be called when a topic
// view is exited so events for hidden rooms stop arriving.
func (c *Client) LeaveRoom(ctx context.Context, topicID string) error {
	c.mu.Lock()
	if c.room != topicID {
		c.mu.Unlock()
		return nil
	}
	c.room = ""
	c.mu.Unlock()

	if err := c.emitControl(ctx, "leaveTopic", topicID); err != nil {
		return err
	}

	c.logger.Debug("left room", slog.String("topic_id", topicID))
	return nil
}

// emitControl sends one client control event (joinTopic / leaveTopic).
func (c *Client) emitControl(ctx context.Context, event, topicID string) error {
	payload, err := json.Marshal(joinPayload{TopicID: topicID})
	if err != nil {
		return fmt.Errorf("marshal control payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/"+event, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create control request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Channel-ID", c.id)
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.control.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", event, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s rejected with status %d", event, resp.StatusCode)
	}
	return nil
}

// Close leaves the active room and stops the stream. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	room := c.room
	c.room = ""
	cancel := c.cancel
	c.cancel = nil
	done := c.done
	c.mu.Unlock()

	if room != "" {
		ctx, cancelLeave := context.WithTimeout(context.Background(), controlTimeout)
		if err := c.emitControl(ctx, "leaveTopic", room); err != nil {
			c.logger.Debug("best-effort room leave failed", slog.String("error", err.Error()))
		}
		cancelLeave()
	}

	if cancel != nil {
		cancel()
		<-done
		c.logger.Info("push channel closed")
	}
}
