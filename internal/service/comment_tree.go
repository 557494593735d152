package service

import (
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// subtreeIDs walks the thread below rootID and returns rootID followed by
// every descendant. Both children lists and parent links are followed, so a
// reply whose parent lost track of it is still collected. Cycles are
// visited once.
func subtreeIDs(rootID uuid.UUID, comments []*model.Comment) []uuid.UUID {
	byID := lo.KeyBy(comments, func(c *model.Comment) uuid.UUID {
		return c.ID
	})

	childrenOf := make(map[uuid.UUID][]uuid.UUID)
	for _, c := range comments {
		if c.ParentID != nil {
			childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c.ID)
		}
	}

	visited := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID

	stack := []uuid.UUID{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		ids = append(ids, id)

		if c, ok := byID[id]; ok {
			stack = append(stack, c.Children...)
		}
		stack = append(stack, childrenOf[id]...)
	}

	return ids
}
