package redisstream_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"checkcore/internal/adapters/out/redisstream"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestNotifier_Publish(t *testing.T) {
	ctx := context.Background()
	_, client := setupTestRedis(t)
	notifier := redisstream.NewNotifier(client, "checkcore:", 0)

	rvcID := kernel.NewUUID()
	checkID := kernel.NewUUID()
	occurredAt := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	channel := ports.RvcChannel(rvcID)

	err := notifier.Publish(ctx, ports.Event{
		Type:       ports.EventKdsUpdate,
		Channel:    channel,
		CheckID:    checkID,
		Action:     "send",
		OccurredAt: occurredAt,
	})
	require.NoError(t, err)

	entries, err := client.XRange(ctx, notifier.StreamName(channel), "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kds_update", entries[0].Values["type"])

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values["data"].(string)), &payload))
	assert.Equal(t, checkID.String(), payload["checkId"])
	assert.Equal(t, "send", payload["action"])
	assert.Equal(t, channel, payload["channel"])
}

func TestNotifier_PublishSeparatesChannels(t *testing.T) {
	ctx := context.Background()
	_, client := setupTestRedis(t)
	notifier := redisstream.NewNotifier(client, "checkcore:", 0)

	first := ports.RvcChannel(kernel.NewUUID())
	second := ports.RvcChannel(kernel.NewUUID())
	for _, channel := range []string{first, first, second} {
		require.NoError(t, notifier.Publish(ctx, ports.Event{
			Type: ports.EventCheckUpdate, Channel: channel, CheckID: kernel.NewUUID(), Action: "update",
		}))
	}

	n, err := client.XLen(ctx, notifier.StreamName(first)).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = client.XLen(ctx, notifier.StreamName(second)).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestNotifier_PublishErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("should reject an event without a channel", func(t *testing.T) {
		_, client := setupTestRedis(t)
		err := redisstream.NewNotifier(client, "", 0).Publish(ctx, ports.Event{Type: ports.EventCheckUpdate})
		require.Error(t, err)
	})

	t.Run("should surface a broken connection", func(t *testing.T) {
		mr, client := setupTestRedis(t)
		mr.Close()
		err := redisstream.NewNotifier(client, "", 0).Publish(ctx, ports.Event{
			Type: ports.EventCheckUpdate, Channel: "rvc:x", CheckID: kernel.NewUUID(),
		})
		require.Error(t, err)
	})
}
