package memory

import (
	"testing"

	check "gopkg.in/check.v1"

	"github.com/mycok/pathfinder/graph/graphtest"
)

var _ = check.Suite(new(inMemoryStoreTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

// inMemoryStoreTestSuite embeds and runs the StoreSuite test methods.
type inMemoryStoreTestSuite struct {
	graphtest.StoreSuite
}

func (s *inMemoryStoreTestSuite) SetUpTest(c *check.C) {
	s.SetStore(NewInMemoryStore())
}
