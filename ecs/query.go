package ecs

import "github.com/milk9111/quarterturn/ecs/component"

// ForEach visits every live entity holding kind.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := storeFor(w, kind, false)
	if s == nil || fn == nil {
		return
	}
	ids := append([]entityID(nil), s.dense...)
	for _, id := range ids {
		v, ok := s.get(id)
		if !ok || !w.alive[id] {
			continue
		}
		fn(w.handle(id), v)
	}
}

// ForEach2 visits every live entity holding both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	for _, id := range smallest(sa.dense, sb.dense) {
		a, ok := sa.get(id)
		if !ok {
			continue
		}
		b, ok := sb.get(id)
		if !ok || !w.alive[id] {
			continue
		}
		fn(w.handle(id), a, b)
	}
}

// ForEach3 visits every live entity holding all three kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	sc := storeFor(w, kc, false)
	if sa == nil || sb == nil || sc == nil || fn == nil {
		return
	}
	for _, id := range smallest(sa.dense, sb.dense, sc.dense) {
		a, ok := sa.get(id)
		if !ok {
			continue
		}
		b, ok := sb.get(id)
		if !ok {
			continue
		}
		c, ok := sc.get(id)
		if !ok || !w.alive[id] {
			continue
		}
		fn(w.handle(id), a, b, c)
	}
}

// ForEach4 visits every live entity holding all four kinds.
func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	sc := storeFor(w, kc, false)
	sd := storeFor(w, kd, false)
	if sa == nil || sb == nil || sc == nil || sd == nil || fn == nil {
		return
	}
	for _, id := range smallest(sa.dense, sb.dense, sc.dense, sd.dense) {
		a, ok := sa.get(id)
		if !ok {
			continue
		}
		b, ok := sb.get(id)
		if !ok {
			continue
		}
		c, ok := sc.get(id)
		if !ok {
			continue
		}
		d, ok := sd.get(id)
		if !ok || !w.alive[id] {
			continue
		}
		fn(w.handle(id), a, b, c, d)
	}
}

// First returns the lowest-id live entity holding kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeFor(w, kind, false)
	if s == nil {
		return 0, false
	}
	found := false
	var best entityID
	for _, id := range s.dense {
		if !w.alive[id] {
			continue
		}
		if !found || id < best {
			best = id
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return w.handle(best), true
}

// smallest copies the shortest id list so callbacks may mutate storages while iterating.
func smallest(lists ...[]entityID) []entityID {
	var pick []entityID
	for i, l := range lists {
		if i == 0 || len(l) < len(pick) {
			pick = l
		}
	}
	return append([]entityID(nil), pick...)
}
