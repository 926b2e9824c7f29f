package types

// JSONMap is a free-form jsonb payload persisted via the gorm json serializer.
type JSONMap map[string]any
