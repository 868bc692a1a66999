package domain

import "github.com/google/uuid"

// Tag is a globally unique label. Tags are shared across posts and are never
// deleted; a tag whose last post link is removed stays in the dictionary.
type Tag struct {
	ID   uuid.UUID
	Name string
}

// TagNames returns the names of tags in order.
func TagNames(tags []Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}

// TagIDs returns the ids of tags with duplicates removed, preserving first
// occurrence order.
func TagIDs(tags []Tag) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tags))
	seen := make(map[uuid.UUID]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		ids = append(ids, t.ID)
	}
	return ids
}
