package service

// boxRow lists the reversal continuations available below a key.
// Declared order matters: the level function tries candidates in this order
// and the first match wins.
type boxRow struct {
	key      int
	children [][]int
}

// boxRows is the traversal table behind the path catalog. Keys and child
// elements are normalized box magnitudes; a child whose tail has no row of
// its own terminates the walk there.
var boxRows = []boxRow{
	{2000, [][]int{{1732, -1500}, {-1732, 1299}}},
	{1732, [][]int{{1500, -1299}, {-1500, 1125}}},

	{1299, [][]int{{1125, -974, 843}, {-1125, 730}}},
	{1125, [][]int{{974, -843}, {-974, 632}}},
	{974, [][]int{{843, -730}, {-843, 548}}},

	{843, [][]int{{730, -632, 474}, {-730, 411}}},
	{730, [][]int{{632, -548, 411}, {-632, 356}}},
	{632, [][]int{{548, -474}, {-548, 308}}},
	{548, [][]int{{474, -411}, {-474, 356}}},

	{474, [][]int{{411, -356, 267}, {-411, 231}}},
	{411, [][]int{{356, -308, 231}, {-356, 200}}},
	{356, [][]int{{308, -267}, {-308, 173}}},
	{308, [][]int{{267, -231}, {-267, 150}, {231, -308}}},

	{267, [][]int{{231, -200, 130}, {-231, 112}}},
	{231, [][]int{{200, -173, 112}, {-200, 97}}},
	{200, [][]int{{173, -130}, {-173, 84}}},
	{173, [][]int{{150, -112}, {-150, 23}}},
	{150, [][]int{{130, -97}, {-130, 63}}},

	{130, [][]int{{112, -97, 54}, {-112, 47}}},
	{112, [][]int{{97, -84, 41}, {-97, 35}, {84, -112}}},
	{97, [][]int{{84, -54}, {-84, 30}}},
	{84, [][]int{{73, -47}, {-73, 26}}},
	{73, [][]int{{63, -41}, {-63, 17}}},
	{63, [][]int{{54, -35}, {-54, 20}, {-47, 10}}},
	{23, [][]int{{-20, 13}, {20, -17, 15}, {-15, 11}}},
}

// startingPoints are the catalog roots, walked in order.
var startingPoints = []int{2000, 1732, 1299, 1125, 974, 843, 730, 632, 548, 474, 411, 356}

var boxChildren map[int][][]int

func init() {
	boxChildren = make(map[int][][]int, len(boxRows))
	for _, r := range boxRows {
		boxChildren[r.key] = r.children
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
