package typ

import (
	"fmt"
	"reflect"
	"sync"
)

type (
	//Resolver resolves element types of declared members
	Resolver struct {
		mux     sync.RWMutex
		members map[member]*Descriptor
		types   map[reflect.Type]*Descriptor
	}

	member struct {
		owner reflect.Type
		name  string
	}
)

// Register registers descriptor for owner struct member
func (r *Resolver) Register(owner reflect.Type, name string, desc *Descriptor) error {
	if owner = ensureStruct(owner); owner == nil {
		return fmt.Errorf("typ: owner has to be a struct type")
	}
	if name == "" || desc == nil {
		return fmt.Errorf("typ: invalid registration for %s: name and descriptor are required", owner.String())
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	r.members[member{owner: owner, name: name}] = desc
	return nil
}

// RegisterType registers descriptor for a named type
func (r *Resolver) RegisterType(t reflect.Type, desc *Descriptor) error {
	if t == nil || desc == nil {
		return fmt.Errorf("typ: type and descriptor are required")
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	r.types[t] = desc
	return nil
}

// Descriptor returns descriptor for a declared member type
func (r *Resolver) Descriptor(declared, owner reflect.Type, name string) *Descriptor {
	if owner = ensureStruct(owner); owner != nil && name != "" {
		r.mux.RLock()
		desc := r.lookupMember(owner, name, map[reflect.Type]bool{})
		r.mux.RUnlock()
		if desc != nil {
			return desc
		}
	}
	if declared == nil {
		return nil
	}
	r.mux.RLock()
	desc, ok := r.types[declared]
	r.mux.RUnlock()
	if ok {
		return desc
	}
	return Of(declared)
}

// ResolveArguments returns resolved type arguments of declared member type or nil when they can not be resolved
func (r *Resolver) ResolveArguments(declared, owner reflect.Type, name string) []reflect.Type {
	desc := r.Descriptor(declared, owner, name)
	if desc == nil {
		return nil
	}
	if len(desc.Args) == 0 && desc.Type != nil && desc.Type != declared {
		desc = Of(desc.Type)
	}
	return desc.ArgTypes()
}

// lookupMember walks owner and its embedded structs, depth first in field order
func (r *Resolver) lookupMember(owner reflect.Type, name string, visited map[reflect.Type]bool) *Descriptor {
	if visited[owner] {
		return nil
	}
	visited[owner] = true
	if desc, ok := r.members[member{owner: owner, name: name}]; ok {
		return desc
	}
	for i := 0; i < owner.NumField(); i++ {
		field := owner.Field(i)
		if !field.Anonymous {
			continue
		}
		embedded := ensureStruct(field.Type)
		if embedded == nil {
			continue
		}
		if desc := r.lookupMember(embedded, name, visited); desc != nil {
			return desc
		}
	}
	return nil
}

func ensureStruct(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

// NewResolver creates a resolver
func NewResolver() *Resolver {
	return &Resolver{
		members: make(map[member]*Descriptor),
		types:   make(map[reflect.Type]*Descriptor),
	}
}
