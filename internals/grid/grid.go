package grid

// Size is the edge length of the puzzle grid.
const Size = 9

const boxSize = 3

// Grid is a 9x9 puzzle grid. Zero marks an empty cell; filled cells hold 1-9.
type Grid [Size][Size]int

// New builds the deterministic fill pattern: cell (i,j) holds
// ((i*5+j*7) mod 9)+1 when (i+j) is divisible by 3, and stays empty
// otherwise. Both coefficients must be coprime to 9: filled cells repeat
// every three rows and columns, so a coefficient sharing a factor with 9
// would duplicate values within a line. The pattern is a pure function of
// the indices, so every grid built this way is identical and always
// validates; Validate still runs on every block so tampered grids are
// caught.
func New() Grid {
	var g Grid
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if (i+j)%3 == 0 {
				g[i][j] = (i*5+j*7)%9 + 1
			}
		}
	}
	return g
}

// Validate checks every row, column and 3x3 box for out-of-range or
// duplicated filled values.
func (g Grid) Validate() bool {
	for i := 0; i < Size; i++ {
		if !distinct(g.row(i)) || !distinct(g.column(i)) {
			return false
		}
	}
	for bi := 0; bi < boxSize; bi++ {
		for bj := 0; bj < boxSize; bj++ {
			if !distinct(g.box(bi, bj)) {
				return false
			}
		}
	}
	return true
}

func (g Grid) row(i int) []int {
	out := make([]int, Size)
	copy(out, g[i][:])
	return out
}

func (g Grid) column(j int) []int {
	out := make([]int, Size)
	for i := 0; i < Size; i++ {
		out[i] = g[i][j]
	}
	return out
}

func (g Grid) box(bi, bj int) []int {
	out := make([]int, 0, boxSize*boxSize)
	for i := bi * boxSize; i < (bi+1)*boxSize; i++ {
		for j := bj * boxSize; j < (bj+1)*boxSize; j++ {
			out = append(out, g[i][j])
		}
	}
	return out
}

// distinct reports whether the filled values in cells are in range and
// pairwise distinct. Empty cells are ignored.
func distinct(cells []int) bool {
	var seen [Size + 1]bool
	for _, v := range cells {
		if v == 0 {
			continue
		}
		if v < 1 || v > Size {
			return false
		}
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
