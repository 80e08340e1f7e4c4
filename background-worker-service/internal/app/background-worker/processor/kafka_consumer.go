package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/entity"
	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/service"
	"github.com/imnotmomo/dokku/pkg/metrics"
)

// KafkaConsumer обрабатывает события из Kafka топика restroom_events
type KafkaConsumer struct {
	reader       *kafka.Reader
	reconcileSvc service.ReconcileServiceInterface
	topic        string
	groupID      string
	stopChan     chan struct{}
	doneChan     chan struct{}
}

// NewKafkaConsumer создает новый Kafka consumer
func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	reconcileSvc service.ReconcileServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    minBytes,
		MaxBytes:    maxBytes,
		StartOffset: kafka.LastOffset,
		// Настройки для автоматического коммита offset
		CommitInterval: time.Second,
		// Таймауты
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:       reader,
		reconcileSvc: reconcileSvc,
		topic:        topic,
		groupID:      groupID,
		stopChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	log.Println("Starting Kafka consumer...")
	go c.consume(ctx)
}

// Stop останавливает consumer
func (c *KafkaConsumer) Stop() {
	log.Println("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	c.reader.Close()
	log.Println("Kafka consumer stopped")
}

// consume читает и обрабатывает сообщения из Kafka
func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			// Читаем сообщение с таймаутом
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}

				log.Printf("Error fetching message: %v", err)
				time.Sleep(time.Second)
				continue
			}

			// Обрабатываем сообщение
			if err := c.processMessage(ctx, message); err != nil {
				log.Printf("Error processing message: %v", err)
				// Не коммитим offset при ошибке - сообщение будет повторно обработано
			} else {
				// Коммитим offset после успешной обработки
				if err := c.reader.CommitMessages(ctx, message); err != nil {
					log.Printf("Error committing message: %v", err)
				}
			}
		}
	}
}

// processMessage обрабатывает одно сообщение из Kafka
func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	start := time.Now()

	var event entity.RestroomEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal restroom event: %w", err)
	}

	log.Printf("Received %s event for restroom %d (offset: %d, partition: %d)",
		event.EventType, event.RestroomID, message.Offset, message.Partition)

	if err := c.reconcileSvc.ProcessRestroomEvent(ctx, &event); err != nil {
		return fmt.Errorf("failed to process restroom event: %w", err)
	}

	metrics.RecordKafkaMessageConsumed("background-worker", c.topic, c.groupID, time.Since(start))
	return nil
}

// GetStats возвращает статистику consumer
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
