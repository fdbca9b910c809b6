package service

// Level counts complete reversal steps of an oriented path by replaying it
// against boxRows with sign propagation. Candidates are tried in declared
// order, first match wins. Always at least 1.
func Level(p []int) int {
	if len(p) <= 1 {
		return 1
	}
	level := 0
	idx := 0
	key := p[0]
	for idx < len(p)-1 {
		candidates, ok := boxChildren[abs(key)]
		if !ok || len(candidates) == 0 {
			break
		}
		matched := false
		for _, c := range candidates {
			m := len(c)
			if idx+1+m > len(p) {
				continue
			}
			hit := true
			for j := 0; j < m; j++ {
				want := c[j]
				if key < 0 {
					want = -want
				}
				if p[idx+1+j] != want {
					hit = false
					break
				}
			}
			if !hit {
				continue
			}
			level++
			idx += m
			last := c[m-1]
			if key < 0 {
				last = -last
			}
			key = last
			matched = true
			break
		}
		if !matched {
			break
		}
	}
	if level < 1 {
		return 1
	}
	return level
}
