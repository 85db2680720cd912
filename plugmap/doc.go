// Package plugmap provides PlugMap, a fixed-size, chained concurrent
// hash map built entirely out of plug.Keep cells.
//
// Every bin is a Keep[Entry]; every chain link is itself a Keep holding
// the next node's pointer. That gives Get the same lock-free read
// semantics as a bare Keep, and gives Insert/Remove a CAS-retry
// publication step identical in spirit to Keep.Exchange.
//
// # Quick Start
//
//	m := plugmap.New[string, int]()
//	m.Insert("mk", 39)
//	g := m.Get("mk")
//	fmt.Println(g.Value()) // 39
//	g.Release()
//
// # Sizing
//
// PlugMap does not resize. Config.InitialTableSize picks the table
// width (as log2 of bin count, 4..32, i.e. 16..1<<32 bins) once, at
// construction time, and it stays fixed for the map's lifetime. Zero
// selects the default; any other value outside 4..32 makes
// NewWithConfig return an error.
//
// # Hot reload
//
// HotConfig watches a configuration file for non-structural knobs
// (log level) via github.com/agilira/argus. A requested change to the
// table's initial size is structural — it is detected and logged as
// declined, never applied live.
package plugmap
