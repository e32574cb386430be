package services

import (
	"testing"

	"github.com/pawgrounds/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comment(id uint, parentID *uint) models.Comment {
	return models.Comment{ID: id, PostID: 1, AuthorID: 1, Content: "c", ParentCommentID: parentID}
}

func ref(id uint) *uint { return &id }

func TestBuildCommentTreeFlat(t *testing.T) {
	rows := []models.Comment{
		comment(1, nil),
		comment(2, nil),
		comment(3, nil),
	}

	roots := BuildCommentTree(rows, DefaultReplyDepthCap)

	require.Len(t, roots, 3)
	assert.Equal(t, uint(1), roots[0].ID)
	assert.Equal(t, uint(2), roots[1].ID)
	assert.Equal(t, uint(3), roots[2].ID)
	for _, r := range roots {
		assert.Empty(t, r.Replies)
	}
}

func TestBuildCommentTreeNesting(t *testing.T) {
	rows := []models.Comment{
		comment(1, nil),
		comment(2, ref(1)),
		comment(3, ref(1)),
		comment(4, ref(2)),
		comment(5, nil),
	}

	roots := BuildCommentTree(rows, DefaultReplyDepthCap)

	require.Len(t, roots, 2)
	root := roots[0]
	require.Len(t, root.Replies, 2)
	assert.Equal(t, uint(2), root.Replies[0].ID)
	assert.Equal(t, uint(3), root.Replies[1].ID)
	require.Len(t, root.Replies[0].Replies, 1)
	assert.Equal(t, uint(4), root.Replies[0].Replies[0].ID)
	assert.Equal(t, uint(5), roots[1].ID)
}

func TestBuildCommentTreeDepthCap(t *testing.T) {
	// Chain 1 <- 2 <- 3 <- 4 <- 5: depths 0..4.
	rows := []models.Comment{
		comment(1, nil),
		comment(2, ref(1)),
		comment(3, ref(2)),
		comment(4, ref(3)),
		comment(5, ref(4)),
	}

	roots := BuildCommentTree(rows, 3)

	require.Len(t, roots, 1)
	node := roots[0]
	for _, want := range []uint{2, 3, 4} {
		require.Len(t, node.Replies, 1)
		node = node.Replies[0]
		assert.Equal(t, want, node.ID)
	}
	// Depth 4 exceeds the cap: the node at the cap renders with no replies.
	assert.Empty(t, node.Replies)
}

func TestBuildCommentTreeDefaultCap(t *testing.T) {
	rows := []models.Comment{
		comment(1, nil),
		comment(2, ref(1)),
		comment(3, ref(2)),
		comment(4, ref(3)),
		comment(5, ref(4)),
	}

	// A non-positive cap falls back to the default of 3.
	roots := BuildCommentTree(rows, 0)

	require.Len(t, roots, 1)
	depth := 0
	node := roots[0]
	for len(node.Replies) > 0 {
		node = node.Replies[0]
		depth++
	}
	assert.Equal(t, DefaultReplyDepthCap, depth)
}

func TestBuildCommentTreeMissingParent(t *testing.T) {
	rows := []models.Comment{
		comment(1, nil),
		comment(2, ref(99)), // parent not in the set
	}

	roots := BuildCommentTree(rows, DefaultReplyDepthCap)

	require.Len(t, roots, 2)
	assert.Equal(t, uint(1), roots[0].ID)
	assert.Equal(t, uint(2), roots[1].ID)
}

func TestBuildCommentTreeSiblingOrder(t *testing.T) {
	rows := []models.Comment{
		comment(1, nil),
		comment(2, ref(1)),
		comment(3, nil),
		comment(4, ref(1)),
		comment(5, ref(3)),
	}

	roots := BuildCommentTree(rows, DefaultReplyDepthCap)

	require.Len(t, roots, 2)
	require.Len(t, roots[0].Replies, 2)
	// Siblings keep creation order.
	assert.Equal(t, uint(2), roots[0].Replies[0].ID)
	assert.Equal(t, uint(4), roots[0].Replies[1].ID)
	require.Len(t, roots[1].Replies, 1)
	assert.Equal(t, uint(5), roots[1].Replies[0].ID)
}

func TestBuildCommentTreeParentCycle(t *testing.T) {
	// Corrupt data: two rows referencing each other. The walk must stay
	// bounded and every row must still render somewhere.
	rows := []models.Comment{
		comment(1, ref(2)),
		comment(2, ref(1)),
	}

	roots := BuildCommentTree(rows, DefaultReplyDepthCap)

	require.Len(t, roots, 1)
	assert.Equal(t, uint(1), roots[0].ID)
	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, uint(2), roots[0].Replies[0].ID)
}

func TestBuildCommentTreeEmpty(t *testing.T) {
	roots := BuildCommentTree(nil, DefaultReplyDepthCap)
	assert.Empty(t, roots)
}
