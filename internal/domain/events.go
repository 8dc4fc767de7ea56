package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogLoaded    EventType = "CatalogLoaded"
	EventCatalogReloaded  EventType = "CatalogReloaded"
	EventSelectionChanged EventType = "SelectionChanged"
	EventSelectionCleared EventType = "SelectionCleared"
	EventFilterChanged    EventType = "FilterChanged"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CatalogLoadedEvent is emitted after the initial catalog load
type CatalogLoadedEvent struct {
	Path     string
	Products int
}

func (e CatalogLoadedEvent) Type() EventType { return EventCatalogLoaded }

// CatalogReloadedEvent is emitted when the catalog file changed on disk
type CatalogReloadedEvent struct {
	Path     string
	Products []Product
}

func (e CatalogReloadedEvent) Type() EventType { return EventCatalogReloaded }

// SelectionChangedEvent is emitted when products are added to or removed
// from the selection
type SelectionChangedEvent struct {
	Added   []ProductID
	Removed []ProductID
	Total   int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// SelectionClearedEvent is emitted when the selection is reset
type SelectionClearedEvent struct{}

func (e SelectionClearedEvent) Type() EventType { return EventSelectionCleared }

// FilterChangedEvent is emitted when the query changes
type FilterChangedEvent struct {
	Query      string
	MatchCount int
}

func (e FilterChangedEvent) Type() EventType { return EventFilterChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Catalog string
	Locale  string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
