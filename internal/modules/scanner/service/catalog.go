package service

import "strconv"

// generatePaths walks boxRows depth-first from every starting point and
// returns the deduplicated catalog in generation order. All paths are stored
// in their positive-first form; the short side is derived at match time.
func generatePaths() [][]int {
	seen := make(map[string]struct{})
	out := make([][]int, 0, 4096)
	for _, s := range startingPoints {
		walk([]int{s}, s, seen, &out)
	}
	return out
}

func walk(path []int, key int, seen map[string]struct{}, out *[][]int) {
	children, ok := boxChildren[abs(key)]
	if !ok || len(children) == 0 {
		emit(path, seen, out)
		return
	}
	for _, c := range children {
		child := make([]int, len(c))
		copy(child, c)
		if key < 0 {
			for i := range child {
				child[i] = -child[i]
			}
		}
		next := make([]int, 0, len(path)+len(child))
		next = append(next, path...)
		next = append(next, child...)
		tail := child[len(child)-1]
		if abs(tail) == abs(key) {
			// closed a cycle back onto the current key, stop here
			emit(next, seen, out)
			continue
		}
		walk(next, tail, seen, out)
	}
}

func emit(path []int, seen map[string]struct{}, out *[][]int) {
	if len(path) == 0 {
		return
	}
	k := pathKey(path)
	if _, dup := seen[k]; dup {
		return
	}
	seen[k] = struct{}{}
	p := make([]int, len(path))
	copy(p, path)
	*out = append(*out, p)
}

func pathKey(path []int) string {
	b := make([]byte, 0, len(path)*6)
	for _, v := range path {
		b = strconv.AppendInt(b, int64(v), 10)
		b = append(b, ',')
	}
	return string(b)
}
