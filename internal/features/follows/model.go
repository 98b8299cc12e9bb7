package follows

// FollowEdge is materialized redundantly in two places:
//
//	users/{follower}/following/{followee} = true
//	users/{followee}/followers/{follower} = true
//
// The store has no multi-path transactions, so the two sides are written
// and removed as two independent point operations. A crash between them
// leaves a half-edge; Reconcile repairs the drift.

// FollowResponse reports the state after a toggle. Counts are the live
// cardinality of the corresponding subtrees.
type FollowResponse struct {
	TargetUID       string `json:"targetUid"`
	Following       bool   `json:"following"`
	TargetFollowers int    `json:"targetFollowers"`
	MyFollowing     int    `json:"myFollowing"`
}

// ReconcileReport summarizes a drift-repair pass over one user's edges.
type ReconcileReport struct {
	UID           string   `json:"uid"`
	RepairedEdges []string `json:"repairedEdges,omitempty"`
}
