package socket

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"vibin_chats/models"
	"vibin_chats/services"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type emitted struct {
	event string
	args  []interface{}
}

// recordingConn records every emitted event
type recordingConn struct {
	mu     sync.Mutex
	events []emitted
	query  string
}

func (c *recordingConn) Emit(event string, v ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, emitted{event: event, args: v})
}

func (c *recordingConn) ID() string { return "sock-1" }

func (c *recordingConn) URL() url.URL {
	return url.URL{Path: "/socket.io/", RawQuery: c.query}
}

func (c *recordingConn) all() []emitted {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]emitted(nil), c.events...)
}

// gatedLoader blocks each load until its gate is released
type gatedLoader struct {
	mu       sync.Mutex
	calls    int
	gates    []chan []models.ChatRow
	errs     []error
	started  chan int
	canceled []bool
}

func newGatedLoader(n int) *gatedLoader {
	l := &gatedLoader{started: make(chan int, n), errs: make([]error, n), canceled: make([]bool, n)}
	for i := 0; i < n; i++ {
		l.gates = append(l.gates, make(chan []models.ChatRow, 1))
	}
	return l
}

func (l *gatedLoader) LoadRows(ctx context.Context, userID int64) ([]models.ChatRow, error) {
	l.mu.Lock()
	i := l.calls
	l.calls++
	l.mu.Unlock()

	l.started <- i
	rows := <-l.gates[i]
	if ctx.Err() != nil {
		l.mu.Lock()
		l.canceled[i] = true
		l.mu.Unlock()
	}
	return rows, l.errs[i]
}

func row(chatID int64) models.ChatRow {
	return models.ChatRow{ChatID: chatID, MatchID: chatID * 100, Status: models.RowStatusPending}
}

func TestChatListView_Load(t *testing.T) {
	loader := newGatedLoader(1)
	conn := &recordingConn{}
	view := NewChatListView(loader, conn, 7, zap.NewNop())

	loader.gates[0] <- []models.ChatRow{row(1)}
	require.NoError(t, view.Load(context.Background()))

	events := conn.all()
	require.Len(t, events, 1)
	assert.Equal(t, EventChatsRows, events[0].event)
	resp := events[0].args[0].(models.ChatListResponse)
	assert.Equal(t, []models.ChatRow{row(1)}, resp.Rows)
	assert.NotEmpty(t, resp.LoadToken)
}

func TestChatListView_EmptyList(t *testing.T) {
	loader := newGatedLoader(1)
	conn := &recordingConn{}
	view := NewChatListView(loader, conn, 7, zap.NewNop())

	loader.gates[0] <- nil
	require.NoError(t, view.Load(context.Background()))

	resp := conn.all()[0].args[0].(models.ChatListResponse)
	assert.Empty(t, resp.Rows)
	assert.Equal(t, models.NoChatsAvailable, resp.EmptyMessage)
}

func TestChatListView_SupersededLoadIsDiscarded(t *testing.T) {
	loader := newGatedLoader(2)
	conn := &recordingConn{}
	view := NewChatListView(loader, conn, 7, zap.NewNop())

	firstErr := make(chan error, 1)
	go func() { firstErr <- view.Load(context.Background()) }()
	require.Equal(t, 0, <-loader.started)

	secondErr := make(chan error, 1)
	go func() { secondErr <- view.Load(context.Background()) }()
	require.Equal(t, 1, <-loader.started)

	// the newer load finishes first, the older one arrives late
	loader.gates[1] <- []models.ChatRow{row(2)}
	require.NoError(t, <-secondErr)
	loader.gates[0] <- []models.ChatRow{row(1)}
	assert.ErrorIs(t, <-firstErr, ErrStaleLoad)

	events := conn.all()
	require.Len(t, events, 1)
	assert.Equal(t, []models.ChatRow{row(2)}, events[0].args[0].(models.ChatListResponse).Rows)
	assert.True(t, loader.canceled[0], "superseded load is cancelled")
}

func TestChatListView_CloseDiscardsInFlightLoad(t *testing.T) {
	loader := newGatedLoader(1)
	conn := &recordingConn{}
	view := NewChatListView(loader, conn, 7, zap.NewNop())

	errCh := make(chan error, 1)
	go func() { errCh <- view.Load(context.Background()) }()
	<-loader.started

	view.Close()
	loader.gates[0] <- []models.ChatRow{row(1)}

	assert.ErrorIs(t, <-errCh, ErrStaleLoad)
	assert.Empty(t, conn.all())
	assert.True(t, loader.canceled[0])

	assert.ErrorIs(t, view.Load(context.Background()), ErrViewClosed)
}

func TestChatListView_LoadError(t *testing.T) {
	loader := newGatedLoader(1)
	loader.errs[0] = services.ErrChatListUnavailable
	conn := &recordingConn{}
	view := NewChatListView(loader, conn, 7, zap.NewNop())

	loader.gates[0] <- nil
	err := view.Load(context.Background())
	assert.True(t, errors.Is(err, services.ErrChatListUnavailable))

	events := conn.all()
	require.Len(t, events, 1)
	assert.Equal(t, EventChatsError, events[0].event)
	resp := events[0].args[0].(models.ChatListResponse)
	assert.Empty(t, resp.Rows)
	assert.NotEmpty(t, resp.Error)
}

type fakeAuth struct {
	userID int64
	err    error
	token  string
}

func (f *fakeAuth) Authenticate(ctx context.Context, token string) (int64, error) {
	f.token = token
	return f.userID, f.err
}

func TestHandlers_Connect(t *testing.T) {
	t.Run("valid session mounts a view", func(t *testing.T) {
		auth := &fakeAuth{userID: 7}
		h := NewHandlers(auth, newGatedLoader(1), time.Second, zap.NewNop())
		conn := &recordingConn{query: "token=abc"}

		view := h.Connect(conn)

		require.NotNil(t, view)
		assert.Equal(t, "abc", auth.token)
		assert.Empty(t, conn.all())
	})

	t.Run("missing session asks for login", func(t *testing.T) {
		h := NewHandlers(&fakeAuth{err: services.ErrNoSession}, newGatedLoader(1), time.Second, zap.NewNop())
		conn := &recordingConn{}

		view := h.Connect(conn)

		assert.Nil(t, view)
		events := conn.all()
		require.Len(t, events, 1)
		assert.Equal(t, EventAuthRequired, events[0].event)
		assert.Equal(t, map[string]string{"error": "not authenticated", "redirect": models.LoginRoute}, events[0].args[0])
	})

	t.Run("corrupt session is reported as such", func(t *testing.T) {
		h := NewHandlers(&fakeAuth{err: services.ErrCorruptSession}, newGatedLoader(1), time.Second, zap.NewNop())
		conn := &recordingConn{query: "token=bad"}

		assert.Nil(t, h.Connect(conn))
		assert.Equal(t, "corrupt session", conn.all()[0].args[0].(map[string]string)["error"])
	})
}

func TestHandlers_LoadAndDisconnect(t *testing.T) {
	loader := newGatedLoader(1)
	h := NewHandlers(&fakeAuth{userID: 7}, loader, time.Second, zap.NewNop())
	conn := &recordingConn{query: "token=abc"}

	view := h.Connect(conn)
	require.NotNil(t, view)

	h.Load(conn, view)
	<-loader.started
	h.Disconnect(conn, view, "client namespace disconnect")
	loader.gates[0] <- []models.ChatRow{row(1)}

	// the load goroutine exits once released; goleak verifies it at TestMain
	assert.Eventually(t, func() bool {
		loader.mu.Lock()
		defer loader.mu.Unlock()
		return loader.canceled[0]
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, conn.all())
}

func TestHandlers_LoadWithoutView(t *testing.T) {
	h := NewHandlers(&fakeAuth{}, newGatedLoader(1), time.Second, zap.NewNop())
	conn := &recordingConn{}

	h.Load(conn, nil)

	events := conn.all()
	require.Len(t, events, 1)
	assert.Equal(t, EventAuthRequired, events[0].event)
}
