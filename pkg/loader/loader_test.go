package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qikoffice/qikoffice-go/pkg/constants"
)

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("request did not settle")
	}
}

func TestLoadEmptyURLStaysIdle(t *testing.T) {
	var calls atomic.Int32
	l := New(func(ctx context.Context, url string) (string, error) {
		calls.Add(1)
		return url, nil
	})

	waitDone(t, l.Load(context.Background(), ""))

	st := l.State()
	assert.False(t, st.Loading)
	assert.Equal(t, "", st.Data)
	assert.NoError(t, st.Err)
	assert.Equal(t, int32(0), calls.Load())
}

func TestLoadAppliesResult(t *testing.T) {
	l := New(func(ctx context.Context, url string) (string, error) {
		return "data for " + url, nil
	})

	waitDone(t, l.Load(context.Background(), "/a"))

	st := l.State()
	assert.False(t, st.Loading)
	assert.Equal(t, "data for /a", st.Data)
	assert.Equal(t, "/a", l.URL())
}

func TestLoadSameURLDoesNotRefetch(t *testing.T) {
	var calls atomic.Int32
	l := New(func(ctx context.Context, url string) (int, error) {
		return int(calls.Add(1)), nil
	})

	waitDone(t, l.Load(context.Background(), "/a"))
	waitDone(t, l.Load(context.Background(), "/a"))

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, l.State().Data)
}

func TestLoadDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	l := New(func(ctx context.Context, url string) (string, error) {
		if url == "/old" {
			close(started)
			// Ignores cancellation on purpose: the late result must still be dropped.
			<-release
			return "old", nil
		}
		return "new", nil
	})

	oldDone := l.Load(context.Background(), "/old")
	<-started
	assert.True(t, l.State().Loading)

	newDone := l.Load(context.Background(), "/new")
	waitDone(t, newDone)
	assert.Equal(t, "new", l.State().Data)

	close(release)
	waitDone(t, oldDone)

	st := l.State()
	assert.Equal(t, "new", st.Data)
	assert.False(t, st.Loading)
	assert.NoError(t, st.Err)
}

func TestLoadCancelsPreviousRequest(t *testing.T) {
	cancelled := make(chan struct{})
	l := New(func(ctx context.Context, url string) (string, error) {
		if url == "/slow" {
			<-ctx.Done()
			close(cancelled)
			return "", ctx.Err()
		}
		return url, nil
	})

	slowDone := l.Load(context.Background(), "/slow")
	waitDone(t, l.Load(context.Background(), "/fast"))
	waitDone(t, slowDone)

	select {
	case <-cancelled:
	default:
		t.Fatal("previous request was not cancelled")
	}
	st := l.State()
	assert.Equal(t, "/fast", st.Data)
	assert.NoError(t, st.Err, "the cancelled request's error must not leak into state")
}

func TestLoadCapturesError(t *testing.T) {
	boom := errors.New("network down")
	l := New(func(ctx context.Context, url string) (string, error) {
		if url == "/fail" {
			return "", boom
		}
		return "ok", nil
	})

	waitDone(t, l.Load(context.Background(), "/ok"))
	waitDone(t, l.Load(context.Background(), "/fail"))

	st := l.State()
	assert.ErrorIs(t, st.Err, boom)
	assert.False(t, st.Loading)
	assert.Equal(t, "ok", st.Data, "data from the last successful load is kept")

	waitDone(t, l.Load(context.Background(), "/ok"))
	assert.NoError(t, l.State().Err)
}

func TestCloseDropsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	l := New(func(ctx context.Context, url string) (string, error) {
		<-release
		return "late", nil
	})

	done := l.Load(context.Background(), "/a")
	l.Close()
	close(release)
	waitDone(t, done)

	assert.Equal(t, "", l.State().Data)

	// Further loads are ignored once closed.
	waitDone(t, l.Load(context.Background(), "/b"))
	assert.Equal(t, "/a", l.URL())
}

func TestJSONFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/notes":
			_, _ = w.Write([]byte(`[{"id":"n1","content":"hello"}]`))
		default:
			_, _ = w.Write([]byte(`<html>not json</html>`))
		}
	}))
	defer srv.Close()

	type note struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	}
	l := New(JSONFetcher[[]note](srv.Client()))

	waitDone(t, l.Load(context.Background(), srv.URL+"/notes"))
	st := l.State()
	require.NoError(t, st.Err)
	require.Len(t, st.Data, 1)
	assert.Equal(t, "hello", st.Data[0].Content)

	waitDone(t, l.Load(context.Background(), srv.URL+"/broken"))
	assert.ErrorIs(t, l.State().Err, constants.ErrInvalidResponse)
}
