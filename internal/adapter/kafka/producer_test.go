package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type MockProducerClient struct {
	mock.Mock
}

func (m *MockProducerClient) ProduceSync(
	ctx context.Context, rs ...*kgo.Record,
) kgo.ProduceResults {
	args := m.Called(ctx, rs)
	err := args.Error(0)
	results := make(kgo.ProduceResults, len(rs))
	for i, r := range rs {
		results[i] = kgo.ProduceResult{Record: r, Err: err}
	}
	return results
}

func (m *MockProducerClient) Close() {
	m.Called()
}

type MockEncoder struct {
	mock.Mock
}

func (m *MockEncoder) Encode(v any) ([]byte, error) {
	args := m.Called(v)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func clientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		opts.cl = cl
		return nil
	}
}

func TestNewCatalogEventsProducer(t *testing.T) {
	t.Run("TooFewOpts", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = NewCatalogEventsProducer(ProducerEncoderOpt(new(MockEncoder)))
		})
	})

	t.Run("NilEncoder", func(t *testing.T) {
		_, err := NewCatalogEventsProducer(
			clientOpt(new(MockProducerClient)),
			ProducerEncoderOpt(nil),
		)
		assert.Error(t, err)
	})
}

func TestCatalogEventsProducer(t *testing.T) {
	evt := domain.CatalogEvent{
		Kind:       domain.EventDeleted,
		Entity:     domain.EntityProduct,
		EntityID:   "3",
		OccurredAt: time.UnixMilli(1700000000000),
	}
	wantSchema := schema.CatalogEventV1{
		Kind:       "deleted",
		Entity:     "product",
		EntityID:   "3",
		OccurredAt: time.UnixMilli(1700000000000).UTC(),
	}

	newProducer := func(
		t *testing.T,
	) (CatalogEventsProducer, *MockProducerClient, *MockEncoder) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		p, err := NewCatalogEventsProducer(clientOpt(cl), ProducerEncoderOpt(enc))
		require.NoError(t, err)
		return p, cl, enc
	}

	t.Run("Produced", func(t *testing.T) {
		p, cl, enc := newProducer(t)
		enc.On("Encode", wantSchema).Return([]byte("encoded"), nil)
		cl.On("ProduceSync", mock.Anything, mock.MatchedBy(
			func(rs []*kgo.Record) bool {
				return len(rs) == 1 &&
					string(rs[0].Key) == "product:3" &&
					string(rs[0].Value) == "encoded"
			},
		)).Return(nil)

		require.NoError(t, p.ProduceEvent(t.Context(), evt))
		cl.AssertExpectations(t)
	})

	t.Run("EncodeError", func(t *testing.T) {
		p, cl, enc := newProducer(t)
		enc.On("Encode", mock.Anything).Return(nil, errors.New("bad schema"))

		err := p.ProduceEvent(t.Context(), evt)
		assert.ErrorContains(t, err, "bad schema")
		cl.AssertNotCalled(t, "ProduceSync", mock.Anything, mock.Anything)
	})

	t.Run("BrokerError", func(t *testing.T) {
		p, cl, enc := newProducer(t)
		enc.On("Encode", mock.Anything).Return([]byte("encoded"), nil)
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(errors.New("not enough replicas"))

		err := p.ProduceEvent(t.Context(), evt)
		assert.ErrorContains(t, err, "not enough replicas")
	})

	t.Run("CanceledContext", func(t *testing.T) {
		p, cl, _ := newProducer(t)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := p.ProduceEvent(ctx, evt)
		assert.ErrorIs(t, err, context.Canceled)
		cl.AssertNotCalled(t, "ProduceSync", mock.Anything, mock.Anything)
	})

	t.Run("Close", func(t *testing.T) {
		p, cl, _ := newProducer(t)
		cl.On("Close").Return()
		p.Close()
		cl.AssertCalled(t, "Close")
	})
}
