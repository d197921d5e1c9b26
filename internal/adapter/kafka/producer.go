package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.CatalogEventsProducer = (*CatalogEventsProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A CatalogEventsProducer used for produce [domain.CatalogEvent].
//
// Records are keyed by entity kind and id, so every change of one entity
// lands in the same partition in order.
type CatalogEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewCatalogEventsProducer(
	opts ...ProducerOpt,
) (CatalogEventsProducer, error) {
	const op = "NewCatalogEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CatalogEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "CatalogEventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return CatalogEventsProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p CatalogEventsProducer) Close() {
	p.producer.close()
}

func (p CatalogEventsProducer) ProduceEvent(
	ctx context.Context, evt domain.CatalogEvent,
) error {
	const op = "ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p CatalogEventsProducer) createRecord(
	evt domain.CatalogEvent,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := catalogEventToSchemaV1(evt)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}

	key := []byte(s.Entity + ":" + s.EntityID)
	return &kgo.Record{Key: key, Value: b}, nil
}

func catalogEventToSchemaV1(evt domain.CatalogEvent) schema.CatalogEventV1 {
	return schema.CatalogEventV1{
		Kind:       string(evt.Kind),
		Entity:     string(evt.Entity),
		EntityID:   evt.EntityID,
		OccurredAt: evt.OccurredAt.UTC(),
	}
}
