package schedule

// cursor is a byte position over an input expression. Parse functions
// advance it as they consume input; backtracking is an explicit "save the
// position, restore on failure" at the call sites that allow it.
type cursor struct {
	in  string
	pos int
}

func (c *cursor) eof() bool { return c.pos >= len(c.in) }

// eat consumes b if it is the next byte and reports whether it did.
func (c *cursor) eat(b byte) bool {
	if c.pos < len(c.in) && c.in[c.pos] == b {
		c.pos++
		return true
	}
	return false
}

// digits consumes a maximal run of ASCII digits and returns it.
func (c *cursor) digits() string {
	start := c.pos
	for c.pos < len(c.in) && c.in[c.pos] >= '0' && c.in[c.pos] <= '9' {
		c.pos++
	}
	return c.in[start:c.pos]
}
