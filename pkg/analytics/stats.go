// Package analytics derives per-user post and completed-todo extremes from
// remote data and the persisted override map.
package analytics

import (
	"fmt"

	"github.com/aretw0/stickyboard/pkg/core"
	"github.com/aretw0/stickyboard/pkg/remote"
)

// Extreme is the user holding a maximum or minimum count.
// User is nil when the counted id is not in the user set.
type Extreme struct {
	User  *remote.User `json:"user" yaml:"user"`
	Count int          `json:"count" yaml:"count"`
}

func (e *Extreme) String() string {
	if e == nil || e.User == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%d)", e.User.Username, e.Count)
}

// Stats is the analytics panel.
type Stats struct {
	TotalUsers           int      `json:"totalUsers" yaml:"totalUsers"`
	MostPosts            *Extreme `json:"mostPosts" yaml:"mostPosts"`
	FewestPosts          *Extreme `json:"fewestPosts" yaml:"fewestPosts"`
	MostCompletedTodos   *Extreme `json:"mostCompletedTodos" yaml:"mostCompletedTodos"`
	FewestCompletedTodos *Extreme `json:"fewestCompletedTodos" yaml:"fewestCompletedTodos"`
}

// Compute derives Stats. It returns nil when any input collection is empty.
//
// Ties go to the user counted first: ids are ordered by first appearance in
// posts (or todos), followed by users that never appeared, in user order.
func Compute(users []remote.User, posts []remote.Post, todos []remote.Todo, overrides core.Overrides) *Stats {
	if len(users) == 0 || len(posts) == 0 || len(todos) == 0 {
		return nil
	}

	byPosts := newCounter()
	for _, p := range posts {
		byPosts.add(p.UserID, 1)
	}

	byCompleted := newCounter()
	for _, t := range todos {
		if overrides.Effective(t.ID, t.Completed) {
			byCompleted.add(t.UserID, 1)
		}
	}

	for _, u := range users {
		byPosts.add(u.ID, 0)
		byCompleted.add(u.ID, 0)
	}

	index := make(map[int]*remote.User, len(users))
	for i := range users {
		if _, dup := index[users[i].ID]; !dup {
			index[users[i].ID] = &users[i]
		}
	}

	return &Stats{
		TotalUsers:           len(users),
		MostPosts:            byPosts.extreme(index, greater),
		FewestPosts:          byPosts.extreme(index, less),
		MostCompletedTodos:   byCompleted.extreme(index, greater),
		FewestCompletedTodos: byCompleted.extreme(index, less),
	}
}

func greater(a, b int) bool { return a > b }
func less(a, b int) bool    { return a < b }

// counter counts per user id and remembers first-seen order.
type counter struct {
	order  []int
	counts map[int]int
}

func newCounter() *counter {
	return &counter{counts: make(map[int]int)}
}

func (c *counter) add(id, n int) {
	if _, ok := c.counts[id]; !ok {
		c.order = append(c.order, id)
	}
	c.counts[id] += n
}

// extreme scans in first-seen order; better must be strict so earlier ids win ties.
func (c *counter) extreme(users map[int]*remote.User, better func(a, b int) bool) *Extreme {
	if len(c.order) == 0 {
		return nil
	}
	bestID := c.order[0]
	best := c.counts[bestID]
	for _, id := range c.order[1:] {
		if n := c.counts[id]; better(n, best) {
			bestID, best = id, n
		}
	}
	return &Extreme{User: users[bestID], Count: best}
}
