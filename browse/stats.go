package browse

import (
	"github.com/shulehub/forum/models"
	"github.com/shulehub/forum/utils"
)

// DefaultMemberBaseOffset is added to the distinct author count. Carried over
// from the original surface; its business meaning is undocumented, so it is
// kept as a named, overridable constant rather than reinterpreted.
const DefaultMemberBaseOffset = 142

// Stats are summary counters derived from the full, unfiltered collection.
type Stats struct {
	PostCount   int `json:"post_count"`
	ReplyCount  int `json:"reply_count"`
	MemberCount int `json:"member_count"`
}

// Aggregate computes the summary counters. It always runs over the complete
// collection, independent of any active filters.
func Aggregate(posts []models.Post, memberBaseOffset int) Stats {
	replies := 0
	authorIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		replies += p.Stats.Replies
		authorIDs = append(authorIDs, p.Author.ID)
	}
	return Stats{
		PostCount:   len(posts),
		ReplyCount:  replies,
		MemberCount: len(utils.UniqueStrings(authorIDs)) + memberBaseOffset,
	}
}
