package repository

import (
	"context"

	"YenMetrics/internal/domain/models"
	pkgkafka "YenMetrics/pkg/kafka"
)

// KafkaSnapshotPublisher emits snapshots to a Kafka topic, keyed by data
// version so consumers see per-version ordering.
type KafkaSnapshotPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaSnapshotPublisher(producer *pkgkafka.Producer, topic string) *KafkaSnapshotPublisher {
	return &KafkaSnapshotPublisher{producer: producer, topic: topic}
}

func (p *KafkaSnapshotPublisher) Publish(ctx context.Context, snap *models.MetricsSnapshot) error {
	return p.producer.Publish(ctx, p.topic, []byte(snap.DataVersion), snap)
}

func (p *KafkaSnapshotPublisher) Close() error {
	return p.producer.Close()
}
