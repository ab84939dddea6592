package domain

import "github.com/google/uuid"

// CanAccess reports whether ownerID may read or change b. It is kept apart
// from any lookup so the rule can be checked without a store.
func CanAccess(ownerID uuid.UUID, b *Bookmark) bool {
	if b == nil || ownerID == uuid.Nil {
		return false
	}
	return b.UserID == ownerID
}
