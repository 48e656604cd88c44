// Package stickyboard is the composition root of a small personal dashboard:
// a login gate, a sticky-note board with priorities, completion overrides
// for remote todos, derived analytics and a weather lookup.
//
// Notes and overrides live in a key/value store (one JSON file per key by
// default, SQLite or memory on request). Components that must react to each
// other's changes talk through an explicit notification hub: local changes
// carry their new value, changes made by another process sharing the store
// arrive as an invalidation that forces a re-read.
//
// Usage:
//
//	app, err := stickyboard.New("./data", stickyboard.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//
//	note, err := app.Board.Add(ctx, "water the plants", core.PriorityImportant)
package stickyboard
