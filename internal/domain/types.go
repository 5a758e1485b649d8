package domain

import "github.com/google/uuid"

type UserID = uuid.UUID
type TokenID = uuid.UUID
type CategoryID = uuid.UUID
