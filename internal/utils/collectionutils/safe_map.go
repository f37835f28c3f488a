package collectionutils

import "sync"

type SafeMap[K comparable, V any] struct {
	data   map[K]V
	mutext sync.RWMutex
}

// StoreIfAbsent stores the value only when the key is free and reports whether it did.
func (safeMap *SafeMap[K, V]) StoreIfAbsent(newKey K, newValue V) bool {
	safeMap.mutext.Lock()
	defer safeMap.mutext.Unlock()
	if _, exists := safeMap.data[newKey]; exists {
		return false
	}
	safeMap.data[newKey] = newValue
	return true
}

func (safeMap *SafeMap[K, V]) Delete(key K) {
	safeMap.mutext.Lock()
	defer safeMap.mutext.Unlock()
	delete(safeMap.data, key)
}

// Values returns a snapshot of the stored values in no particular order.
func (safeMap *SafeMap[K, V]) Values() []V {
	safeMap.mutext.RLock()
	defer safeMap.mutext.RUnlock()
	values := make([]V, 0, len(safeMap.data))
	for _, v := range safeMap.data {
		values = append(values, v)
	}
	return values
}

func New[K comparable, V any]() *SafeMap[K, V] {
	return &SafeMap[K, V]{
		data: make(map[K]V),
	}
}
