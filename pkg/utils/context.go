package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ActorIDKey   contextKey = "actor_id"
	ActorNameKey contextKey = "actor_name"
)

func SetActorContext(ctx context.Context, actorID uuid.UUID, actorName string) context.Context {
	ctx = context.WithValue(ctx, ActorIDKey, actorID.String())
	ctx = context.WithValue(ctx, ActorNameKey, actorName)
	return ctx
}

func GetActorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	actorIDVal := ctx.Value(ActorIDKey)
	if actorIDVal == nil {
		return uuid.Nil, false
	}

	actorIDStr, ok := actorIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	actorID, err := uuid.Parse(actorIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return actorID, true
}

func GetActorNameFromContext(ctx context.Context) (string, bool) {
	nameVal := ctx.Value(ActorNameKey)
	if nameVal == nil {
		return "", false
	}

	name, ok := nameVal.(string)
	return name, ok
}
