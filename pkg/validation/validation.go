// Package validation checks player input before it is queued for the
// simulation.
package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/opd-ai/go-lawndefense/pkg/entity"
	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

// Input limits
const (
	// MaxPendingCommands bounds the commands waiting for the next frame.
	MaxPendingCommands = 256
	// MaxPointerSlack is how far outside the field a pointer may report.
	MaxPointerSlack = 1000
)

var (
	ErrInvalidPoint   = errors.New("invalid pointer position")
	ErrUnknownKind    = errors.New("unknown defender kind")
	ErrUnknownCommand = errors.New("unknown command")
	ErrQueueFull      = errors.New("command queue full")
)

// ValidatePoint rejects pointer positions that are not finite or lie far
// outside the play field.
func ValidatePoint(pt physics.Vector2D) error {
	if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidPoint, pt)
	}
	if pt.X < -MaxPointerSlack || pt.X > entity.FieldWidth+MaxPointerSlack ||
		pt.Y < -MaxPointerSlack || pt.Y > entity.FieldHeight+MaxPointerSlack {
		return fmt.Errorf("%w: %v is outside the field", ErrInvalidPoint, pt)
	}
	return nil
}

// ValidateDefenderKind rejects kinds that cannot be planted.
func ValidateDefenderKind(kind entity.DefenderKind) error {
	for _, k := range entity.DefenderKinds() {
		if k == kind {
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
}

// ValidateQueueLength rejects a new command once pending commands are waiting.
func ValidateQueueLength(pending int) error {
	if pending >= MaxPendingCommands {
		return fmt.Errorf("%w: %d pending (max %d)", ErrQueueFull, pending, MaxPendingCommands)
	}
	return nil
}
