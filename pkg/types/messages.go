package types

// Client -> Server
// ToggleVisibility: {}
//   flips whether the overlay is shown; every client receives the new view
//
// Any other type is answered with an Error and the connection stays open.

// Server -> Client
// StatsSnapshot:
//   version: number // snapshots received so far, 0 before the first
//   visible: boolean
//   stats: Stats // omitted until a snapshot arrives or when the active
//                // player is not in allPlayers
//
// Error:
//   error: string
//
