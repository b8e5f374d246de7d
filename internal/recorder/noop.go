package recorder

import (
	"context"

	"CurbClicker/internal/model"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvent(_ model.Event) error                    { return nil }
func (n *NoopRecorder) RecordSave(_ *SaveSummary) error                    { return nil }
func (n *NoopRecorder) RecentSaves(_ string, _ int) ([]SaveSummary, error) { return nil, nil }
func (n *NoopRecorder) Deliver(_ context.Context, _ model.Event) error     { return nil }
func (n *NoopRecorder) Close() error                                       { return nil }
