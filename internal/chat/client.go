package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"hmade-storefront/internal/logger"
	"hmade-storefront/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateOpen         State = "open"
	StateRetryPending State = "retry-pending"
	StateClosed       State = "closed"
)

const defaultReconnectDelay = 3 * time.Second

// Options configures a Client. HistoryLimit caps the turns sent with each
// message: zero means DefaultHistorySize, a negative value sends none.
type Options struct {
	URL            string
	ReconnectDelay time.Duration
	HistoryLimit   int
	Metrics        *metrics.Metrics
}

// Update is the widget as the browser should render it.
type Update struct {
	State     State     `json:"state"`
	Connected bool      `json:"connected"`
	Busy      bool      `json:"busy"`
	Messages  []Message `json:"messages"`
}

// Client keeps one chat socket alive for a mounted widget. All state lives
// in the run goroutine; the exported methods only post commands to it.
// Reconnects use a single timer, so at most one attempt is ever pending.
type Client struct {
	dialer Dialer
	opts   Options
	log    *zap.Logger

	cmds    chan func(*loop)
	events  chan event
	updates chan Update
	closing chan struct{}
	done    chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
}

func NewClient(dialer Dialer, opts Options) *Client {
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = defaultReconnectDelay
	}
	if opts.HistoryLimit == 0 {
		opts.HistoryLimit = DefaultHistorySize
	}
	return &Client{
		dialer:  dialer,
		opts:    opts,
		log:     logger.L().With(zap.String("component", "ChatClient")),
		cmds:    make(chan func(*loop)),
		events:  make(chan event),
		updates: make(chan Update, 1),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start connects and keeps reconnecting until Close.
func (c *Client) Start() {
	c.startOnce.Do(func() {
		go c.run()
	})
}

// Updates delivers the latest widget state. Intermediate states may be
// skipped; the channel is closed after Close.
func (c *Client) Updates() <-chan Update {
	return c.updates
}

// Send posts a user message. When the socket is not open nothing is appended,
// ErrNotConnected is returned and a reconnect is started right away.
func (c *Client) Send(text string) error {
	var err error
	if !c.do(func(l *loop) { err = l.send(text) }) {
		return ErrClosed
	}
	return err
}

// Clear resets the conversation to the welcome message.
func (c *Client) Clear() error {
	if !c.do(func(l *loop) { l.clear() }) {
		return ErrClosed
	}
	return nil
}

func (c *Client) Snapshot() Update {
	var u Update
	if !c.do(func(l *loop) { u = l.update() }) {
		return Update{State: StateClosed, Messages: []Message{}}
	}
	return u
}

// Close cancels any pending reconnect, closes the socket and waits for the
// run goroutine to exit. Nothing reconnects afterwards.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closing)
	})
	c.startOnce.Do(func() {
		close(c.updates)
		close(c.done)
	})
	<-c.done
}

func (c *Client) do(fn func(*loop)) bool {
	reply := make(chan struct{})
	select {
	case c.cmds <- func(l *loop) {
		fn(l)
		close(reply)
	}:
	case <-c.done:
		return false
	}
	<-reply
	return true
}

type event struct {
	gen   uint64
	conn  Conn
	frame *Frame
	err   error
	dial  bool
}

type loop struct {
	c     *Client
	state State
	conv  *Conversation
	conn  Conn
	gen   uint64
	timer *time.Timer

	cancelDial context.CancelFunc
}

func (c *Client) run() {
	l := &loop{c: c, state: StateDisconnected, conv: NewConversation()}
	defer func() {
		l.shutdown()
		close(c.updates)
		close(c.done)
	}()

	l.dial(false)

	for {
		var timerC <-chan time.Time
		if l.timer != nil {
			timerC = l.timer.C
		}

		select {
		case <-c.closing:
			return
		case fn := <-c.cmds:
			fn(l)
		case ev := <-c.events:
			l.handle(ev)
		case <-timerC:
			l.timer = nil
			l.dial(true)
		}
	}
}

func (l *loop) dial(reconnect bool) {
	if l.state == StateConnecting || l.state == StateOpen || l.state == StateClosed {
		return
	}
	if reconnect {
		l.c.opts.Metrics.IncChatReconnect()
	}

	l.gen++
	l.state = StateConnecting
	l.publish()

	ctx, cancel := context.WithCancel(context.Background())
	l.cancelDial = cancel

	gen, c := l.gen, l.c
	go func() {
		conn, err := c.dialer.Dial(ctx, c.opts.URL)
		select {
		case c.events <- event{gen: gen, conn: conn, err: err, dial: true}:
		case <-c.done:
			if conn != nil {
				_ = conn.Close()
			}
		}
	}()
}

func (l *loop) handle(ev event) {
	if ev.gen != l.gen {
		if ev.dial && ev.conn != nil {
			_ = ev.conn.Close()
		}
		return
	}

	switch {
	case ev.dial && ev.err != nil:
		l.c.log.Warn("chat connect failed", zap.Error(ev.err))
		l.cancelDial()
		l.scheduleRetry()

	case ev.dial:
		l.cancelDial()
		l.conn = ev.conn
		l.state = StateOpen
		l.c.log.Info("chat connected")
		go l.c.read(ev.conn, ev.gen)
		l.publish()

	case ev.frame != nil:
		l.c.opts.Metrics.IncChatFrame(string(ev.frame.Type))
		if l.conv.Apply(*ev.frame) {
			l.publish()
		}

	case ev.err != nil:
		l.c.log.Info("chat disconnected", zap.Error(ev.err))
		l.dropConn()
		l.scheduleRetry()
	}
}

// scheduleRetry arms the reconnect timer unless one is already pending.
func (l *loop) scheduleRetry() {
	if l.state == StateClosed || l.timer != nil {
		return
	}
	l.state = StateRetryPending
	l.timer = time.NewTimer(l.c.opts.ReconnectDelay)
	l.publish()
}

// reconnectNow replaces a pending timer with an immediate attempt. An attempt
// already in flight is left alone.
func (l *loop) reconnectNow() {
	switch l.state {
	case StateRetryPending:
		l.stopTimer()
		l.dial(true)
	case StateDisconnected:
		l.dial(true)
	}
}

func (l *loop) send(text string) error {
	if l.state != StateOpen {
		l.reconnectNow()
		return ErrNotConnected
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if l.conv.Busy() {
		return ErrBusy
	}

	history := l.conv.History(l.c.opts.HistoryLimit)
	l.conv.BeginTurn("user-"+uuid.NewString(), "bot-"+uuid.NewString(), text)
	l.publish()

	if err := l.conn.WriteJSON(Outbound{Message: text, History: history}); err != nil {
		l.c.log.Warn("chat send failed", zap.Error(err))
		l.conv.Apply(Frame{Type: FrameError})
		l.dropConn()
		l.scheduleRetry()
		return fmt.Errorf("sending chat message: %w", err)
	}
	return nil
}

func (l *loop) clear() {
	l.conv.Clear()
	l.publish()
}

func (l *loop) update() Update {
	return Update{
		State:     l.state,
		Connected: l.state == StateOpen,
		Busy:      l.conv.Busy(),
		Messages:  l.conv.Messages(),
	}
}

// publish replaces whatever update the consumer has not read yet.
func (l *loop) publish() {
	u := l.update()
	select {
	case <-l.c.updates:
	default:
	}
	l.c.updates <- u
}

func (l *loop) dropConn() {
	l.gen++
	if l.conn != nil {
		_ = l.conn.Close()
		l.conn = nil
	}
	l.state = StateDisconnected
}

func (l *loop) stopTimer() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

func (l *loop) shutdown() {
	l.stopTimer()
	if l.cancelDial != nil {
		l.cancelDial()
	}
	if l.conn != nil {
		_ = l.conn.Close()
		l.conn = nil
	}
	l.state = StateClosed
	l.publish()
	l.c.log.Info("chat closed")
}

func (c *Client) read(conn Conn, gen uint64) {
	for {
		f, err := conn.ReadFrame()
		ev := event{gen: gen}
		if err != nil {
			ev.err = err
		} else {
			ev.frame = &f
		}

		select {
		case c.events <- ev:
		case <-c.done:
			return
		}
		if err != nil {
			return
		}
	}
}
