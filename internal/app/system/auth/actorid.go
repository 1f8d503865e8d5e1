package auth

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActorID resolves the current actor's id to an ObjectID. Returns the
// zero ObjectID when no actor is present or the id is malformed; the
// workflows treat a zero id as unauthenticated.
func ActorID(r *http.Request) primitive.ObjectID {
	a, ok := CurrentActor(r)
	if !ok {
		return primitive.NilObjectID
	}
	id, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}
