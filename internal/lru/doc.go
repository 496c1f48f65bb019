// Package lru provides the small thread-safe caches used by the object
// renderers: wrapped text layouts, decoded images by reference and scaled
// image copies.
//
//	layouts := lru.New[layoutKey, []string](512)
//	lines, err := layouts.GetOrCreate(key, func() ([]string, error) {
//	    return wrap(content, face, width), nil
//	})
//
// Values are only stored when create succeeds. Eviction is approximate LRU
// with a soft limit: when the limit is exceeded, the least recently used
// quarter of the entries is dropped at once.
package lru
