package poker

// Group is one bucket produced by GroupBy.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// Len returns the number of items in the group.
func (g Group[K, T]) Len() int {
	return len(g.Items)
}

// GroupBy partitions items by key. Buckets appear in the order their key was
// first seen and each bucket keeps the input order of its items.
func GroupBy[T any, K comparable](items []T, key func(T) K) []Group[K, T] {
	groups := make([]Group[K, T], 0, len(items))
	for _, item := range items {
		k := key(item)
		found := false
		// Linear scan: buckets are few (at most 13 ranks or 4 suits here).
		for i := range groups {
			if groups[i].Key == k {
				groups[i].Items = append(groups[i].Items, item)
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, Group[K, T]{Key: k, Items: []T{item}})
		}
	}
	return groups
}
