package conversationRepo

import (
	"context"

	"tablebot/models"
)

// ConversationRepository persists the single live dialog record per user.
// Operations are independent across users; within one user the semantics
// are last-write-wins.
type ConversationRepository interface {
	// Load returns the user's state, or (nil, nil) when the user has no
	// live dialog (stage NONE).
	Load(ctx context.Context, userID string) (*models.ConversationState, error)
	// Save upserts the user's state, refreshing the dialog TTL.
	Save(ctx context.Context, state *models.ConversationState) error
	// Clear deletes the user's state, resetting the user to stage NONE.
	Clear(ctx context.Context, userID string) error
}
