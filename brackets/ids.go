package brackets

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces match and round ids for one build. Implementations passed to
// concurrent builds must either be independent instances or safe for concurrent use.
type IDGenerator interface {
	NextID() string
}

// IDGeneratorFunc adapts a plain function to IDGenerator.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NextID() string { return f() }

// UUIDGenerator returns random version 4 ids.
func UUIDGenerator() IDGenerator {
	return IDGeneratorFunc(uuid.NewString)
}

// SequentialIDs hands out prefix1, prefix2, ... and is safe for concurrent use.
type SequentialIDs struct {
	prefix string
	mu     sync.Mutex
	next   int
}

func NewSequentialIDs(prefix string) *SequentialIDs {
	return &SequentialIDs{prefix: prefix}
}

func (s *SequentialIDs) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s%d", s.prefix, s.next)
}
