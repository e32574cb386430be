package services

import "github.com/pawgrounds/backend/internal/models"

// DefaultReplyDepthCap is how deep a reply tree is rendered when no cap is
// configured. Rows nested deeper stay persisted; the builder just stops
// attaching them. Flagged for product confirmation whether the cutoff is
// policy or accident.
const DefaultReplyDepthCap = 3

// CommentNode is one rendered node of a comment thread.
type CommentNode struct {
	models.Comment
	Author  models.UserCompact `json:"author"`
	Replies []*CommentNode     `json:"replies"`
}

// BuildCommentTree turns the flat, creation-ordered comment rows of a post
// into a nested reply tree. The build is two passes over an id-indexed map:
// one to compute each row's depth by walking parent pointers, one to attach
// each node to its parent's reply list. No recursion, no pointer cycles.
//
// A comment whose depth exceeds depthCap is not rendered; a comment whose
// parent is missing from the set is treated as a root. Siblings keep the
// input order, which the repository guarantees is FIFO by creation time, so
// a parent and its subtree always render before the next sibling.
func BuildCommentTree(comments []models.Comment, depthCap int) []*CommentNode {
	if depthCap <= 0 {
		depthCap = DefaultReplyDepthCap
	}

	byID := make(map[uint]*models.Comment, len(comments))
	for i := range comments {
		byID[comments[i].ID] = &comments[i]
	}

	depths := make(map[uint]int, len(comments))
	for i := range comments {
		resolveDepth(&comments[i], byID, depths)
	}

	nodes := make(map[uint]*CommentNode, len(comments))
	roots := make([]*CommentNode, 0)
	for i := range comments {
		c := &comments[i]
		if depths[c.ID] > depthCap {
			continue
		}
		node := &CommentNode{Comment: *c, Replies: []*CommentNode{}}
		nodes[c.ID] = node

		if c.ParentCommentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentCommentID]
		if !ok {
			// Parent missing from the set: render as a root rather than drop.
			roots = append(roots, node)
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}

	return roots
}

// resolveDepth computes the depth of c by walking its parent chain, caching
// every depth it learns along the way. Roots are depth 0. The walk is
// bounded by the row count so corrupt data cannot loop it.
func resolveDepth(c *models.Comment, byID map[uint]*models.Comment, depths map[uint]int) int {
	if d, ok := depths[c.ID]; ok {
		return d
	}

	chain := make([]*models.Comment, 0, 4)
	cur := c
	for {
		if len(chain) > len(byID) {
			break
		}
		if _, ok := depths[cur.ID]; ok {
			break
		}
		chain = append(chain, cur)
		if cur.ParentCommentID == nil {
			break
		}
		parent, ok := byID[*cur.ParentCommentID]
		if !ok {
			break
		}
		cur = parent
	}

	// Depth of the deepest resolved ancestor, or -1 when the chain ends at
	// a root, a missing parent, or an unresolved ancestor (the cycle guard
	// tripped), so the next node lands on 0.
	base := -1
	last := chain[len(chain)-1]
	if last.ParentCommentID != nil {
		if parent, ok := byID[*last.ParentCommentID]; ok {
			if d, ok := depths[parent.ID]; ok {
				base = d
			}
		}
	}

	for i := len(chain) - 1; i >= 0; i-- {
		base++
		depths[chain[i].ID] = base
	}
	return depths[c.ID]
}
