package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/relistlabs/relist-backend/api/middleware"
	pkgerrors "github.com/relistlabs/relist-backend/pkg/errors"
)

func requireUserID(ctx context.Context) (uuid.UUID, error) {
	userID := middleware.UserIDFromContext(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return userID, nil
}
