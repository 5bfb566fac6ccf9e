// Package graph is the social/interaction graph engine: the friendship and
// like edges between users and films, and the queries derived from them.
//
// Relations owns edge mutation and enforces referential integrity: both
// endpoints of an edge must exist before the edge is touched. Ranking
// answers the read-side questions (popular films, common friends).
package graph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// edgeMutations counts edge writes that passed the existence checks.
var edgeMutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "filmorate",
		Subsystem: "graph",
		Name:      "edge_mutations_total",
		Help:      "Friendship and like edge mutations by edge kind and operation.",
	},
	[]string{"edge", "op"},
)

const (
	edgeFriend = "friend"
	edgeLike   = "like"

	opAdd    = "add"
	opRemove = "remove"
)
