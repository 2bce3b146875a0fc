package realtime

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	applog "alhaja/internal/log"
)

const channelPrefix = "alhaja:changes:"

// RedisNotifier bridges the in-process bus over a redis pub/sub channel so
// several back-office instances converge after any of them writes. Local
// publishes go to redis; the subscriber loop feeds everything (our own
// publishes included) back into the bus.
type RedisNotifier struct {
	bus *Bus
	rdb *redis.Client
}

// NewRedis creates the client from an address, defaulting to a local server.
func NewRedis(addr, password string) *redis.Client {
	if addr == "" {
		addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: 0})
}

// NewRedisNotifier wires the bridge and starts the subscriber loop. The loop
// stops when ctx is cancelled.
func NewRedisNotifier(ctx context.Context, rdb *redis.Client, bus *Bus) *RedisNotifier {
	n := &RedisNotifier{bus: bus, rdb: rdb}
	sub := rdb.PSubscribe(ctx, channelPrefix+"*")
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				entity := strings.TrimPrefix(msg.Channel, channelPrefix)
				bus.Publish(entity)
			}
		}
	}()
	return n
}

func (n *RedisNotifier) Subscribe(entity string, fn func()) func() {
	return n.bus.Subscribe(entity, fn)
}

// Publish pushes the signal through redis; the local bus hears it via the
// subscriber loop. If redis is unreachable we fall back to a direct local
// publish so a single instance keeps working.
func (n *RedisNotifier) Publish(entity string) {
	if err := n.rdb.Publish(context.Background(), channelPrefix+entity, "").Err(); err != nil {
		applog.Background("error", "realtime.publish_fallback", err, map[string]any{"entity": entity})
		n.bus.Publish(entity)
	}
}
