package service

// Scanner holds the immutable path catalog. Built once at startup, shared
// read-only by every pair executor.
type Scanner struct {
	paths [][]int

	// first path element -> catalog indices, skips paths whose head is
	// absent from the update
	byFirst map[int][]int
}

func New() *Scanner {
	paths := generatePaths()
	byFirst := make(map[int][]int)
	for i, p := range paths {
		byFirst[p[0]] = append(byFirst[p[0]], i)
	}
	return &Scanner{paths: paths, byFirst: byFirst}
}

func (s *Scanner) PathCount() int { return len(s.paths) }
