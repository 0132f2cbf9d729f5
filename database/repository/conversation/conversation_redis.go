package conversationRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tablebot/models"
	"tablebot/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const stateKeyPrefix = "convstate:"

// RedisConversationRepo implements ConversationRepository on Redis.
// States are JSON blobs under convstate:<userID> with a TTL equal to the
// dialog timeout, so an abandoned dialog aborts back to NONE on its own.
type RedisConversationRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisConversationRepo constructs a new instance of RedisConversationRepo.
func NewRedisConversationRepo(ttl time.Duration) ConversationRepository {
	return &RedisConversationRepo{
		client: utils.GetStateCacheClient(),
		ttl:    ttl,
	}
}

func stateKey(userID string) string {
	return stateKeyPrefix + userID
}

// Load fetches and validates the user's state. A structurally invalid
// persisted state is discarded and treated as absent rather than handed
// to the dialog machine.
func (repo *RedisConversationRepo) Load(ctx context.Context, userID string) (*models.ConversationState, error) {
	data, err := repo.client.Get(ctx, stateKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation state for user %s: %w", userID, err)
	}

	var state models.ConversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to parse conversation state for user %s: %w", userID, err)
	}
	if err := state.Validate(); err != nil {
		utils.GetLogger().Warn("discarding structurally invalid conversation state",
			zap.String("userID", userID), zap.Error(err))
		if delErr := repo.client.Del(ctx, stateKey(userID)).Err(); delErr != nil {
			return nil, fmt.Errorf("failed to discard invalid state for user %s: %w", userID, delErr)
		}
		return nil, nil
	}
	return &state, nil
}

// Save upserts the user's state, last-write-wins.
func (repo *RedisConversationRepo) Save(ctx context.Context, state *models.ConversationState) error {
	state.UpdatedAt = time.Now()
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation state for user %s: %w", state.UserID, err)
	}
	if err := repo.client.Set(ctx, stateKey(state.UserID), data, repo.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store conversation state for user %s: %w", state.UserID, err)
	}
	return nil
}

// Clear deletes the user's state.
func (repo *RedisConversationRepo) Clear(ctx context.Context, userID string) error {
	if err := repo.client.Del(ctx, stateKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear conversation state for user %s: %w", userID, err)
	}
	return nil
}
