package appointment

import (
	"github.com/BruksfildServices01/store-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Authorize checks that callerID owns the store with ownerID.
func Authorize(storeOwnerID, callerID uint) error {
	if storeOwnerID == 0 || storeOwnerID != callerID {
		return ErrNotStoreOwner
	}
	return nil
}

// Transition applies an owner decision to ap. There is no terminal-state
// lock: approved and rejected may overwrite each other, and repeating the
// current status is accepted.
func Transition(ap *models.Appointment, storeOwnerID, callerID uint, target string) (Status, error) {
	next, err := ParseTarget(target)
	if err != nil {
		return "", err
	}
	if err := Authorize(storeOwnerID, callerID); err != nil {
		return "", err
	}

	prev := Status(ap.Status)
	ap.Status = string(next)
	return prev, nil
}
