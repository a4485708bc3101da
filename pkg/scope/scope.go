// Package scope provides explicit dependency-injection scopes for sharing
// state composables (for example a selection group) down a component tree
// without ambient globals.
//
// A Scope is a chain of namespace→value maps. A typed Key[T] provides and
// resolves values on a scope:
//
//	var TreeKey = scope.NewKey[*nested.Nested[string]]("loom:tree")
//
//	root := scope.New(nil)
//	TreeKey.Provide(root, tree)
//
//	child := scope.New(root)
//	tree := TreeKey.Use(child) // walks up to root
//
// Use panics when no provider exists on the chain and the key has no
// default: a missing provider is a wiring bug, not a runtime data
// condition.
package scope

import (
	"fmt"
	"sync"
)

// Scope holds provided values for one level of a component tree. Lookups
// fall through to the parent chain.
type Scope struct {
	parent *Scope

	mu     sync.RWMutex
	values map[string]any
}

// New creates a scope with the given parent. A nil parent makes a root
// scope.
func New(parent *Scope) *Scope {
	return &Scope{parent: parent}
}

// set stores a value under a namespace on this scope only.
func (s *Scope) set(namespace string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[namespace] = value
}

// lookup walks the scope chain for a namespace.
func (s *Scope) lookup(namespace string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		v, ok := cur.values[namespace]
		cur.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Key is a typed handle for providing and resolving one kind of value,
// identified by a namespace string.
type Key[T any] struct {
	namespace string

	defaultFn func() T
}

// NewKey creates a key for the given namespace. Namespaces are free-form but
// should be prefixed to avoid collisions (for example "loom:group").
func NewKey[T any](namespace string) *Key[T] {
	return &Key[T]{namespace: namespace}
}

// WithDefault configures a fallback constructor used by Use when no provider
// is found. Returns the key for chaining.
func (k *Key[T]) WithDefault(fn func() T) *Key[T] {
	k.defaultFn = fn
	return k
}

// Namespace returns the key's namespace string.
func (k *Key[T]) Namespace() string {
	return k.namespace
}

// Provide stores value on s under the key's namespace. Descendant scopes
// resolve it via Use; sibling chains do not.
func (k *Key[T]) Provide(s *Scope, value T) {
	s.set(k.namespace, value)
}

// Use resolves the key on the scope chain. When no provider exists, it falls
// back to the key's default constructor; with no default it panics, since an
// unprovided dependency indicates a wiring bug.
func (k *Key[T]) Use(s *Scope) T {
	if v, ok := s.lookup(k.namespace); ok {
		typed, ok := v.(T)
		if !ok {
			panic(fmt.Sprintf("scope: value for %q has wrong type %T", k.namespace, v))
		}
		return typed
	}
	if k.defaultFn != nil {
		return k.defaultFn()
	}
	panic(fmt.Sprintf("scope: no provider for %q", k.namespace))
}

// Has reports whether the key is provided anywhere on the chain.
func (k *Key[T]) Has(s *Scope) bool {
	_, ok := s.lookup(k.namespace)
	return ok
}
