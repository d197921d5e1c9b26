package domain

import "time"

type (
	EventKind  string
	EntityKind string
)

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
)

const (
	EntityProduct  EntityKind = "product"
	EntityCategory EntityKind = "category"
	EntityConfig   EntityKind = "app_config"
)

// CatalogEvent records a mutation the backend has confirmed.
type CatalogEvent struct {
	Kind       EventKind
	Entity     EntityKind
	EntityID   string
	OccurredAt time.Time
}
