package service

import (
	"github.com/google/uuid"

	"github.com/playtube/playtube-go/internal/apperr"
)

// requireOwner is the single ownership check every mutation goes through.
func requireOwner(ownerID, actorID uuid.UUID, what string) error {
	if ownerID != actorID {
		return apperr.Authorization("only the owner may modify this " + what)
	}
	return nil
}
