package typeinfo

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

// cache is a read-through cache of declared members keyed by type. Entries
// are pure functions of the type, so the cache may be dropped at any time.
type cache struct {
	entries sync.Map // reflect.Type -> *declared
	group   singleflight.Group
}

func newCache() *cache {
	return &cache{}
}

func (c *cache) load(
	t reflect.Type,
	build func(reflect.Type) *declared,
) *declared {
	if v, ok := c.entries.Load(t); ok {
		return v.(*declared) //nolint:forcetypeassert
	}

	v, _, _ := c.group.Do(fmt.Sprintf("%p", t), func() (any, error) {
		if v, ok := c.entries.Load(t); ok {
			return v, nil
		}

		d := build(t)
		c.entries.Store(t, d)

		return d, nil
	})

	return v.(*declared) //nolint:forcetypeassert
}

// Purge drops every cached entry.
func (r *Registry) Purge() {
	if r.cache != nil {
		r.cache.entries.Clear()
	}
}
