// Package resource provides a handle table for owned payloads.
//
// Resources are opaque integer handles standing for host-side values. The table
// owns each value through a handle.Shared stake, which gives the three classic
// resource operations a precise lifetime meaning:
//
//	own    - Insert/Adopt put a stake in the table, Take moves it back out
//	borrow - temporary access; the entry cannot be removed while borrowed
//	drop   - Remove releases the table's stake
//
// # Handle Table
//
//	table := resource.NewTable[Conn]()
//	defer table.Close()
//
//	// Insert a value, get a handle
//	h := table.Insert(ConnTypeID, conn)
//
//	// Retrieve value by handle
//	c, ok := table.Get(h)
//
//	// Hand out another owner; the payload outlives Remove
//	peer, ok := table.Share(h)
//	defer peer.Drop()
//
//	// Remove the entry
//	err := table.Remove(h)
//
// Handle 0 is never issued. Freed handles are reused.
//
// # Type Safety
//
// Each entry carries a type ID:
//
//	const FileTypeID = 1
//	const SocketTypeID = 2
//
//	fileHandle := table.Insert(FileTypeID, file)
//
//	value, ok := table.GetTyped(fileHandle, FileTypeID)   // ok
//	value, ok := table.GetTyped(fileHandle, SocketTypeID) // !ok
//
// # Observers
//
// Register observers to track resource lifecycle events:
//
//	table.Subscribe(observer)
//
// EventDropped fires when an entry leaves the table, EventDestroyed when the
// payload is actually destroyed. With shared owners outside the table the
// second can come much later. EventDestroyed is only reported for values
// inserted with Insert.
//
// # Memory Management
//
// Payloads are destroyed by their handle.Deleter when the last owner lets go.
// The default deleter calls Drop() or Close() if the payload has one. Close
// releases every remaining entry, borrowed or not.
//
// # Concurrency
//
// A Table is not safe for concurrent use. Callers that share one between
// goroutines must serialize access to the table and to every handle it hands
// out.
package resource
