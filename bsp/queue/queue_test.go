package queue

import (
	"math/rand"
	"sort"
	"testing"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(new(priorityQueueTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type priorityQueueTestSuite struct{}

type intItem int

func (i intItem) Less(other intItem) bool { return i < other }

func (s *priorityQueueTestSuite) TestEmptyQueue(c *check.C) {
	q := NewPriorityQueue[intItem](0)

	_, ok := q.Peek()
	c.Assert(ok, check.Equals, false)

	_, ok = q.Pop()
	c.Assert(ok, check.Equals, false)
	c.Assert(q.Len(), check.Equals, 0)
}

func (s *priorityQueueTestSuite) TestPopOrder(c *check.C) {
	q := NewPriorityQueue[intItem](16)
	values := rand.New(rand.NewSource(99)).Perm(500)

	for _, v := range values {
		q.Push(intItem(v))
	}
	// Duplicates must survive.
	q.Push(intItem(7))
	values = append(values, 7)
	sort.Ints(values)

	c.Assert(q.Len(), check.Equals, len(values))

	head, ok := q.Peek()
	c.Assert(ok, check.Equals, true)
	c.Assert(head, check.Equals, intItem(0))

	for _, expected := range values {
		got, ok := q.Pop()
		c.Assert(ok, check.Equals, true)
		c.Assert(got, check.Equals, intItem(expected))
	}

	c.Assert(q.Len(), check.Equals, 0)
}

func (s *priorityQueueTestSuite) TestReset(c *check.C) {
	q := NewPriorityQueue[intItem](4)
	for i := 10; i > 0; i-- {
		q.Push(intItem(i))
	}

	q.Reset()
	c.Assert(q.Len(), check.Equals, 0)

	q.Push(intItem(3))
	got, _ := q.Pop()
	c.Assert(got, check.Equals, intItem(3))
}
