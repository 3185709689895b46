package ownership

import (
	"github.com/google/uuid"

	pkgerrors "github.com/relistlabs/relist-backend/pkg/errors"
)

// AssertOwner verifies that actor owns the resource. Every mutating handler
// routes through this check so the forbidden response stays uniform.
func AssertOwner(ownerID, actorID uuid.UUID, resource string) error {
	if actorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if ownerID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "you do not own this "+resource)
	}
	return nil
}
