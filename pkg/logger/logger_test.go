package logger

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newBufferLogger(level logrus.Level) (*Logger, *syncBuffer) {
	out := &syncBuffer{}
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &Logger{log: l}, out
}

func TestLogger_Levels(t *testing.T) {
	l, out := newBufferLogger(logrus.InfoLevel)

	l.Debug("hidden id=%d", 1)
	l.Info("GetByID: fetching booking id=%s", "b-1")
	l.Warn("slot %s taken", "10:00")

	got := out.String()
	assert.NotContains(t, got, "hidden")
	assert.Contains(t, got, "level=info")
	assert.Contains(t, got, "fetching booking id=b-1")
	assert.Contains(t, got, "level=warning")
}

func TestLogger_Writer(t *testing.T) {
	l, out := newBufferLogger(logrus.InfoLevel)

	w := l.Writer()
	_, err := fmt.Fprintln(w, "http: TLS handshake error")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Eventually(t, func() bool {
		s := out.String()
		return strings.Contains(s, "level=error") && strings.Contains(s, "TLS handshake error")
	}, time.Second, 10*time.Millisecond)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}

func TestLogger_CloseWithoutFile(t *testing.T) {
	assert.NoError(t, NewDiscard().Close())
}
