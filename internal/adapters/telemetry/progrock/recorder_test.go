package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/WebReflection/header-snippets/internal/adapters/telemetry/progrock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
}

func TestRecorder_RecordAndComplete(t *testing.T) {
	recorder := progrock.New()

	_, vtx := recorder.Record(context.Background(), "gate dom.query")
	require.NotNil(t, vtx)

	_, err := vtx.Stdout().Write([]byte("probing\n"))
	assert.NoError(t, err)

	vtx.Cached()
	vtx.Complete(nil)

	_, failed := recorder.Record(context.Background(), "load https://shims.example/url.json")
	failed.Complete(errors.New("fetch failed"))

	assert.NoError(t, recorder.Close())
}
