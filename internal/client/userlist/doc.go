// Package userlist owns the state of the paginated user list: the
// authoritative page as last fetched, the view settings layered over it
// (search, sort, visible columns, layout) and the two-phase delete workflow.
//
// A Controller is shared by the front ends. All state sits behind one mutex
// and network calls run without it held, so view changes stay responsive
// while a fetch or delete is outstanding. Page fetches are last-request-wins:
// a response that is no longer the newest is dropped with ErrSuperseded.
package userlist
