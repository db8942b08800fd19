package entity

import "github.com/google/uuid"

// Scope identifies the business and branch a core operation acts for. Every
// engine operation receives one explicitly; nothing reads tenant identity from
// ambient request state.
type Scope struct {
	BusinessID uuid.UUID
	BranchID   uuid.UUID
}
