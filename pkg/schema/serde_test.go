package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestCatalogEventSchemaV1(t *testing.T) {
	var s avro.Schema
	require.NotPanics(t, func() {
		s = avro.MustParse(schema.CatalogEventSchemaTextV1)
	})

	v := schema.CatalogEventV1{
		Kind:       "deleted",
		Entity:     "product",
		EntityID:   "3",
		OccurredAt: time.UnixMilli(1700000000123).UTC(),
	}

	data, err := avro.Marshal(s, v)
	require.NoError(t, err)

	var got schema.CatalogEventV1
	require.NoError(t, avro.Unmarshal(s, data, &got))
	assert.Equal(t, v.Kind, got.Kind)
	assert.Equal(t, v.Entity, got.Entity)
	assert.Equal(t, v.EntityID, got.EntityID)
	assert.True(t, v.OccurredAt.Equal(got.OccurredAt))
}

func TestSerdeCatalogEventV1(t *testing.T) {
	const subject = "catalog-events-value"

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeCatalogEventV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeCatalogEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeCatalogEventV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
	})

	t.Run("RegistryError", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On("DetermineID", t.Context(), subject, schema.CatalogEventSchemaTextV1).
			Return(0, errors.New("registry unavailable"))

		_, err := schema.NewSerdeCatalogEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		assert.ErrorContains(t, err, "registry unavailable")
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On("DetermineID", t.Context(), subject, schema.CatalogEventSchemaTextV1).
			Return(7, nil)

		serde, err := schema.NewSerdeCatalogEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		require.NoError(t, err)

		v1 := schema.CatalogEventV1{
			Kind:       "created",
			Entity:     "category",
			EntityID:   "cat_1",
			OccurredAt: time.UnixMilli(1700000000000).UTC(),
		}

		data, err := serde.Encode(v1)
		require.NoError(t, err)
		require.Greater(t, len(data), 5)
		assert.Equal(t, byte(0), data[0], "confluent wire format magic byte")

		var v2 schema.CatalogEventV1
		require.NoError(t, serde.Decode(data, &v2))
		assert.Equal(t, v1.EntityID, v2.EntityID)
		assert.True(t, v1.OccurredAt.Equal(v2.OccurredAt))
		si.AssertExpectations(t)
	})
}
