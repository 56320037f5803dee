package segmentation

import "github.com/ironsheep/lattice-grouper/internal/raster"

// Connectivity selects neighbour connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

func (c Connectivity) offsets() [][2]int {
	if c == Conn8 {
		return [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	}
	return [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
}

// Label assigns a distinct positive label to every connected region of
// non-zero pixels in bin and returns the label image with the number of
// components. Labels follow discovery order in a row-major scan; use
// SortByXCenter to order them left to right.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H).
func Label(bin *raster.Array[uint8], conn Connectivity) (*LabelImage, int) {
	out := raster.New[int](bin.Width, bin.Height)
	offsets := conn.offsets()
	n := 0
	var queue []int

	for start, v := range bin.Pix {
		if v == 0 || out.Pix[start] != 0 {
			continue
		}
		n++
		out.Pix[start] = n
		queue = append(queue[:0], start)

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			ux, uy := u%bin.Width, u/bin.Width
			for _, d := range offsets {
				vx, vy := ux+d[0], uy+d[1]
				if !bin.InBounds(vx, vy) {
					continue
				}
				vi := vy*bin.Width + vx
				if bin.Pix[vi] == 0 || out.Pix[vi] != 0 {
					continue
				}
				out.Pix[vi] = n
				queue = append(queue, vi)
			}
		}
	}
	return out, n
}
