package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// Commands buffers structural operations (spawns, despawns, component
// insertion and removal) so systems never change query membership while a
// frame is executing. The scheduler flushes each system's buffer after all
// batches complete, in system registration order.
type Commands struct {
	spawns   []spawnCommand
	despawns []EntityID
	inserts  []insertCommand
	removes  []removeCommand
	defers   []func()
}

type spawnCommand struct {
	components []any
}

type insertCommand struct {
	entity    EntityID
	component any
}

type removeCommand struct {
	entity   EntityID
	compType reflect.Type
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn with the given component values.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Despawn queues an entity despawn.
func (c *Commands) Despawn(id EntityID) {
	c.despawns = append(c.despawns, id)
}

// Insert queues a component insertion for an existing entity.
func (c *Commands) Insert(id EntityID, component any) {
	c.inserts = append(c.inserts, insertCommand{entity: id, component: component})
}

// Remove queues a component removal for an existing entity.
func (c *Commands) Remove(id EntityID, compType reflect.Type) {
	c.removes = append(c.removes, removeCommand{entity: id, compType: compType})
}

// Defer queues an arbitrary function to run at flush time, after all queued
// structural operations.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies all queued operations to the world and resets the buffer.
// Operations against entities despawned earlier in the same flush are
// skipped. Errors from individual operations are collected and returned;
// they do not stop the flush.
func (c *Commands) Flush(w *World) []error {
	var errs []error
	despawned := intmap.NewSet[EntityID](len(c.despawns))

	for _, id := range c.despawns {
		if despawned.Has(id) {
			continue
		}
		if err := w.Despawn(id); err != nil {
			errs = append(errs, err)
			continue
		}
		despawned.Add(id)
	}

	for _, cmd := range c.removes {
		if despawned.Has(cmd.entity) {
			continue
		}
		if err := w.removeComponent(cmd.entity, cmd.compType); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.inserts {
		if despawned.Has(cmd.entity) {
			continue
		}
		if err := w.insertComponent(cmd.entity, cmd.component); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.spawns {
		id := w.Spawn()
		for _, component := range cmd.components {
			if err := w.insertComponent(id, component); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	c.inserts = c.inserts[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
	return errs
}
