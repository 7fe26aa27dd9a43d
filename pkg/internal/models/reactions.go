package models

import (
	"fmt"
	"time"
)

// ReactionKind is a closed set; adding a kind means touching every switch
// over it, which is the point.
type ReactionKind int8

const (
	ReactionLike = ReactionKind(iota)
	ReactionPoints
)

func (k ReactionKind) String() string {
	switch k {
	case ReactionLike:
		return "like"
	case ReactionPoints:
		return "points"
	default:
		return fmt.Sprintf("reaction(%d)", int8(k))
	}
}

// ParseReactionKind maps the wire name of a kind back to its variant.
func ParseReactionKind(name string) (ReactionKind, error) {
	switch name {
	case "like":
		return ReactionLike, nil
	case "points":
		return ReactionPoints, nil
	default:
		return 0, fmt.Errorf("unknown reaction kind: %s", name)
	}
}

// Reaction records one viewer-attributable signal on a post. At most one
// reaction per (post, actor, kind) exists; the composite index enforces it
// on the self-hosted backend, hosted backends enforce it server-side.
type Reaction struct {
	ID      uint         `json:"id" gorm:"primaryKey"`
	PostID  string       `json:"post_id" gorm:"uniqueIndex:idx_reaction_identity"`
	ActorID string       `json:"actor_id" gorm:"uniqueIndex:idx_reaction_identity"`
	Kind    ReactionKind `json:"kind" gorm:"uniqueIndex:idx_reaction_identity"`

	CreatedAt time.Time `json:"created_at"`
}
