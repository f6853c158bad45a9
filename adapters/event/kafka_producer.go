package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/linkedin-crm/internal/config"
)

const (
	TopicProfileEvents = "profile.events"

	EventProfileSaved   = "profile.saved"
	EventProfileDeleted = "profile.deleted"
)

type ProfileEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	ProfileID   int64     `json:"profile_id"`
	LinkedinURL string    `json:"linkedin_url"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'profile.events'
	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producer successfully.")

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
	}, nil
}

func (c *KafkaProducerClient) publish(ctx context.Context, eventType string, profileID int64, linkedinURL string) error {
	evt := ProfileEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		ProfileID:   profileID,
		LinkedinURL: linkedinURL,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode profile event failed: %w", err)
	}

	// Keyed by URL so events for one profile stay ordered per partition.
	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(linkedinURL),
		Value: payload,
	})
}

func (c *KafkaProducerClient) ProfileSaved(ctx context.Context, profileID int64, linkedinURL string) error {
	return c.publish(ctx, EventProfileSaved, profileID, linkedinURL)
}

func (c *KafkaProducerClient) ProfileDeleted(ctx context.Context, profileID int64, linkedinURL string) error {
	return c.publish(ctx, EventProfileDeleted, profileID, linkedinURL)
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producer")
}
