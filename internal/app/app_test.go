package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/WebReflection/header-snippets/internal/adapters/telemetry"
	"github.com/WebReflection/header-snippets/internal/app"
	"github.com/WebReflection/header-snippets/internal/core/domain"
	"github.com/WebReflection/header-snippets/internal/core/ports/mocks"
	"github.com/WebReflection/header-snippets/internal/engine/gate"
	"go.uber.org/mock/gomock"
)

func testManifest() *domain.Manifest {
	return &domain.Manifest{
		Version:  "1",
		Baseline: domain.NewInternedString("dom.query"),
		Host:     map[string]any{"dom.query": true},
		Gates: []domain.Gate{
			{
				Capability: domain.NewInternedString("url.parse"),
				Probe: domain.ProbeSpec{
					Kind:  domain.KindProperty,
					Names: domain.NewInternedStrings([]string{"url.parse"}),
				},
				Fallback: domain.NewInternedString("https://shims.example/url.json"),
			},
		},
	}
}

func newApp(t *testing.T) (*app.App, *mocks.MockManifestLoader, *mocks.MockLoader) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockManifests := mocks.NewMockManifestLoader(ctrl)
	mockLoader := mocks.NewMockLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	runner := gate.NewRunner(mockLoader, telemetry.NewNoOp(), mockLogger)
	return app.New(mockManifests, runner, mockLogger), mockManifests, mockLoader
}

func TestApp_Run(t *testing.T) {
	a, mockManifests, mockLoader := newApp(t)

	mockManifests.EXPECT().Load(".").Return(testManifest(), nil)
	mockLoader.EXPECT().
		Load(gomock.Any(), domain.NewInternedString("https://shims.example/url.json")).
		Return(domain.Shim{Capability: domain.NewInternedString("url.parse"), Value: true}, nil)

	statuses, err := a.Run(context.Background(), ".")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if statuses["url.parse"] != gate.StatusLoaded {
		t.Errorf("Expected url.parse loaded, got %s", statuses["url.parse"])
	}
}

func TestApp_Run_ManifestError(t *testing.T) {
	a, mockManifests, _ := newApp(t)

	loadErr := errors.New("no manifest here")
	mockManifests.EXPECT().Load(".").Return(nil, loadErr)

	_, err := a.Run(context.Background(), ".")
	if !errors.Is(err, loadErr) {
		t.Errorf("Expected wrapped manifest error, got %v", err)
	}
}

func TestApp_Run_GateFailure(t *testing.T) {
	a, mockManifests, mockLoader := newApp(t)

	mockManifests.EXPECT().Load(".").Return(testManifest(), nil)
	mockLoader.EXPECT().
		Load(gomock.Any(), gomock.Any()).
		Return(domain.Shim{}, errors.New("connection refused"))

	statuses, err := a.Run(context.Background(), ".")
	if !errors.Is(err, domain.ErrGateExecutionFailed) {
		t.Fatalf("Expected ErrGateExecutionFailed, got %v", err)
	}
	if statuses["url.parse"] != gate.StatusFailed {
		t.Errorf("Expected url.parse failed, got %s", statuses["url.parse"])
	}
}

func TestApp_RegisterProbe(t *testing.T) {
	a, mockManifests, _ := newApp(t)

	if err := a.RegisterProbe("always.on", func(_ *domain.Environment) domain.Outcome {
		return domain.Satisfied()
	}); err != nil {
		t.Fatalf("RegisterProbe failed: %v", err)
	}

	m := testManifest()
	m.Gates[0].Probe = domain.ProbeSpec{
		Kind: domain.KindRegistered,
		Ref:  domain.NewInternedString("always.on"),
	}
	mockManifests.EXPECT().Load(".").Return(m, nil)

	statuses, err := a.Run(context.Background(), ".")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if statuses["url.parse"] != gate.StatusSatisfied {
		t.Errorf("Expected registered probe to satisfy the gate, got %s", statuses["url.parse"])
	}
}

func TestApp_List(t *testing.T) {
	a, mockManifests, _ := newApp(t)

	mockManifests.EXPECT().Load("some/dir").Return(testManifest(), nil)

	m, err := a.List("some/dir")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(m.Gates) != 1 {
		t.Errorf("Expected one gate, got %d", len(m.Gates))
	}
}
