package services

import (
	"fmt"
	"sync"

	"doorbelld/internal/models"
	"doorbelld/internal/providers"
	"doorbelld/internal/storage"
)

type Decision int

const (
	// DecisionDuplicate: the id is the one already tracked.
	DecisionDuplicate Decision = iota
	// DecisionBaseline: first id ever seen, tracked but not captured.
	DecisionBaseline
	// DecisionCapture: a new id, tracked and due for capture.
	DecisionCapture
)

func (d Decision) String() string {
	switch d {
	case DecisionBaseline:
		return providers.DecisionBaseline
	case DecisionCapture:
		return providers.DecisionAccepted
	}
	return providers.DecisionDuplicate
}

type DedupGateInterface interface {
	Decide(rawId string) (Decision, error)
}

// DedupGate remembers the last raw notification id in the cursor file and
// persists a new id before any capture starts. A crash mid-capture drops
// that event instead of capturing it twice.
type DedupGate struct {
	mu     sync.Mutex
	cursor storage.CursorStoreInterface
	logger providers.Logger
}

func NewDedupGate(cursor storage.CursorStoreInterface, logger providers.Logger) DedupGateInterface {
	return &DedupGate{cursor: cursor, logger: logger}
}

func (g *DedupGate) Decide(rawId string) (Decision, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, err := g.cursor.Load()
	if err != nil {
		return DecisionDuplicate, fmt.Errorf("load cursor: %w", err)
	}
	last := current.LastTrackedEventId
	if rawId == last {
		g.logger.Debugf(providers.TypeMotion, "Event %s already processed", rawId)
		return DecisionDuplicate, nil
	}

	if err := g.cursor.Save(models.TrackedEventCursor{LastTrackedEventId: rawId}); err != nil {
		return DecisionDuplicate, fmt.Errorf("save cursor: %w", err)
	}

	if last == "" {
		g.logger.Infof(providers.TypeMotion, "Tracking from event %s on", rawId)
		return DecisionBaseline, nil
	}
	return DecisionCapture, nil
}
