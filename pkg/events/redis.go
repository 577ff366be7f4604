package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vyvo/airports/backend/pkg/airports"
)

// Type names the kind of registry mutation an Event reports.
type Type string

const (
	TypeCreated  Type = "airport.created"
	TypeReplaced Type = "airport.replaced"
	TypePatched  Type = "airport.patched"
	TypeDeleted  Type = "airport.deleted"
)

// historyLimit caps the replay list kept next to the pub/sub channel.
const historyLimit = 1000

// Event describes a single registry mutation.
type Event struct {
	ID         string            `json:"id"`
	Type       Type              `json:"type"`
	AirportID  string            `json:"airport_id"`
	Airport    *airports.Airport `json:"airport,omitempty"`
	OccurredAt int64             `json:"occurred_at"`
}

// NewEvent stamps a mutation with a fresh id and the current time.
func NewEvent(typ Type, airportID string, airport *airports.Airport) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		AirportID:  airportID,
		Airport:    airport,
		OccurredAt: time.Now().Unix(),
	}
}

// Publisher fans registry mutations out over Redis.
type Publisher struct {
	redis   *redis.Client
	channel string
}

// NewPublisher connects to redisURL and verifies the server answers PING.
func NewPublisher(redisURL, channel string) (*Publisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if strings.TrimSpace(channel) == "" {
		return nil, fmt.Errorf("events channel is required")
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Publisher{redis: client, channel: channel}, nil
}

func historyKey(channel string) string {
	return fmt.Sprintf("%s:history", channel)
}

// Publish sends ev to subscribers and appends it to the capped history list.
func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	key := historyKey(p.channel)
	_, err = p.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Publish(ctx, p.channel, payload)
		pipe.RPush(ctx, key, payload)
		pipe.LTrim(ctx, key, -historyLimit, -1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish event %s: %w", ev.ID, err)
	}
	return nil
}

// Recent returns up to n of the latest events, oldest first.
func (p *Publisher) Recent(ctx context.Context, n int64) ([]Event, error) {
	if n <= 0 {
		return []Event{}, nil
	}
	raw, err := p.redis.LRange(ctx, historyKey(p.channel), -n, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read event history: %w", err)
	}

	events := make([]Event, 0, len(raw))
	for _, item := range raw {
		var ev Event
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// Close releases the underlying Redis connections.
func (p *Publisher) Close() error {
	return p.redis.Close()
}
