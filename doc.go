// Package plug provides a lock-free, generic, safe memory reclamation
// primitive — Keep — along with PlugMap, a concurrent hash map built
// entirely out of Keep cells.
//
// # Overview
//
// Plug is designed for building other lock-free structures on top of:
//   - Concurrency: every operation is wait-free or lock-free, built on
//     sync/atomic's typed pointers and a small CAS-retry protocol
//   - Memory safety without hazard pointers or epochs: each cell owns a
//     mutation domain, a chain of nodes that track which historical
//     values still have live readers
//   - Type Safety: generic API, Keep[T any] and Guard[T any]
//   - Observability: OpenTelemetry integration (optional separate module)
//
// # Quick Start
//
//	import "github.com/agilira/plug"
//
//	k := plug.NewKeep(39)
//
//	g := k.Read()
//	fmt.Println(g.Value()) // 39
//	g.Release()
//
//	k.Write(14)
//	g2 := k.Read()
//	fmt.Println(g2.Value()) // 14
//	g2.Release()
//
// # The Mutation Domain
//
// A Keep's current value lives behind an atomic pointer. Every Read,
// Write, Swap or Exchange registers the value it touches into the
// cell's mutation domain — a singly linked list of nodes, each able to
// hold exactly one live value. A value is only released once no node
// in the domain still points at it, which is exactly when every Guard
// that observed it has called Release. There is no manual free: once a
// value becomes unreachable through the domain, the garbage collector
// reclaims it like anything else.
//
// This makes Keep safe to read concurrently with writers without
// blocking: a goroutine holding a Guard from before a Write keeps
// seeing its own snapshot, even after the Keep itself — or every clone
// of it — has been released.
//
// # Keep vs Guard
//
//   - Keep is a handle onto a cell. Cloning a Keep shares the same
//     cell; each clone must be Released independently.
//   - Guard is a snapshot obtained from a Read, Swap, SwapGuard or
//     Exchange. It must be Released independently of the Keep that
//     produced it and of any other Guard.
//
// Dropping either without calling Release simply delays reclamation of
// whatever it was still protecting; it never corrupts state.
//
// # Compare-And-Swap
//
// Exchange compares a Guard's identity, not the value's structural
// equality, against the cell's current value:
//
//	current := k.Read()
//	updated, won := k.Exchange(current, 10)
//	if won {
//	    // updated now holds the value that was replaced
//	}
//	current.Release()
//	updated.Release()
//
// # PlugMap
//
// PlugMap (github.com/agilira/plug/plugmap) is a fixed-size, chained
// hash map whose bins and entry chain links are themselves Keep cells,
// giving every bucket the same lock-free read/write semantics as a
// bare Keep.
//
// # Observability
//
// plug/otel wires Keep and PlugMap operations into OpenTelemetry
// histograms and counters through the MetricsCollector interface. A
// PlugMap takes its MetricsCollector/TimeProvider through Config; a
// bare Keep has no per-instance config, so Configure installs the
// MetricsCollector/TimeProvider every Keep constructed afterward uses
// to instrument Read/Write/Swap/Exchange:
//
//	collector, _ := otelplug.NewCollector(provider)
//	plug.Configure(collector, nil)
//	k := plug.NewKeep(0) // now instrumented
//
// The core plug package has no OTel dependency and pays nothing when
// Configure is never called: every Keep then uses NoOpMetricsCollector
// and SystemTimeProvider, same as PlugMap's own defaults.
//
// # Packages
//
//   - github.com/agilira/plug: Keep, Guard, and the mutation domain
//   - github.com/agilira/plug/plugmap: concurrent hash map built on Keep
//   - github.com/agilira/plug/otel: OpenTelemetry integration (separate module)
//
// # License
//
// See LICENSE file in the repository.
package plug
