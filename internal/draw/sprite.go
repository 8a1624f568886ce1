package draw

// Sprite is a small bitmap: one string per row, any non-space rune sets the
// cell. Cells map to logical canvas units when blitted.
type Sprite []string

// Width returns the widest row of the sprite.
func (s Sprite) Width() int {
	w := 0
	for _, line := range s {
		if len(line) > w {
			w = len(line)
		}
	}
	return w
}

// Height returns the number of rows.
func (s Sprite) Height() int { return len(s) }
