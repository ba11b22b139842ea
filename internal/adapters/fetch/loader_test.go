package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/WebReflection/header-snippets/internal/adapters/fetch"
	"github.com/WebReflection/header-snippets/internal/core/domain"
	"github.com/WebReflection/header-snippets/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *fetch.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return fetch.NewLoader(log)
}

func TestLoader_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"capability": "url.parse", "value": "shim-v1"}`))
	}))
	defer srv.Close()

	shim, err := newLoader(t).Load(context.Background(), domain.NewInternedString(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "url.parse", shim.Capability.String())
	assert.Equal(t, "shim-v1", shim.Value)
}

func TestLoader_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newLoader(t).Load(context.Background(), domain.NewInternedString(srv.URL))
	assert.Error(t, err)
}

func TestLoader_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newLoader(t).Load(context.Background(), domain.NewInternedString(srv.URL))
	assert.Error(t, err)
}

func TestLoader_IdenticalPayloadsDecodedOnce(t *testing.T) {
	// Two distinct URLs serving byte-identical payloads share one cache
	// entry keyed by the body digest.
	body := []byte(`{"capability": "json.codec", "value": true}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	loader := newLoader(t)
	first, err := loader.Load(context.Background(), domain.NewInternedString(srv.URL+"/a"))
	require.NoError(t, err)
	second, err := loader.Load(context.Background(), domain.NewInternedString(srv.URL+"/b"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoader_ConcurrentLoadsCollapse(t *testing.T) {
	var hits atomic.Int64
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"capability": "url.parse", "value": 1}`))
	}))
	defer srv.Close()

	loader := newLoader(t)
	resource := domain.NewInternedString(srv.URL)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = loader.Load(context.Background(), resource)
		}(i)
	}

	// Give all goroutines a chance to queue on the same key before the
	// server responds.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.LessOrEqual(t, hits.Load(), int64(2), "concurrent loads of one resource must collapse")
}
