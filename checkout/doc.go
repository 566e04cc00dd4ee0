// Package checkout is the shopper-facing half of save-for-later.
//
// A Selection tracks which cart lines are checked. SaveCoordinator snapshots the
// selection, writes it to the LocalStore and then to the saved cart API. The local
// write is the durability floor: when the API is unreachable the save is still
// reported, as a warning. RestoreCoordinator fetches the saved list and replays it
// into a new cart through a CartMutator.
package checkout
