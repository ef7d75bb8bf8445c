package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"articlegen-be/internal/dto"
	"articlegen-be/pkg/events"
	pktNats "articlegen-be/pkg/nats"
	"articlegen-be/pkg/rag/index"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process embed queue. Each message is one
// registered source entry waiting for its chunks and embeddings.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	ragIndex       *index.Index
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	ragIndex *index.Index,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		ragIndex:       ragIndex,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedSourceMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed message: %v", err)
		msg.Ack() // malformed, retrying will not help
		return
	}

	log.Printf("[INFO] Embedding source entry %s", payload.EntryId)

	if err := cs.ragIndex.EmbedEntry(ctx, payload.EntryId, payload.Text); err != nil {
		// EmbedEntry already marked the entry errored; the client sees the
		// failure through the entry status, so the message is done.
		log.Printf("[ERROR] Failed to embed entry %s: %v", payload.EntryId, err)
		msg.Ack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.NewSourceIngested(payload.UserId, payload.ArticleId, payload.EntryId, payload.Title)
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish SOURCE_INGESTED event: %v", err)
		}
	}

	log.Printf("[SUCCESS] Source entry %s is ready", payload.EntryId)
	msg.Ack()
}
