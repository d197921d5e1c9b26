package schema

import "time"

const CatalogEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "catalog_event",
	"fields": [
		{"name": "kind", "type": "string"},
		{"name": "entity", "type": "string"},
		{"name": "entity_id", "type": "string"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type CatalogEventV1 struct {
	Kind       string    `avro:"kind"`
	Entity     string    `avro:"entity"`
	EntityID   string    `avro:"entity_id"`
	OccurredAt time.Time `avro:"occurred_at"`
}
