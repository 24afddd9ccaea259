package matcher

// capture records the text a numbered group matched, distinguishing
// "never entered on this path" (set == false) from "matched the empty
// string" (set == true, text == "").
type capture struct {
	text string
	set  bool
}

// captures is the dense, zero-based capture table described in spec.md
// §3: idx = n-1 for a group numbered n. It is grown on demand and cloned
// at every backtracking checkpoint, mirroring
// coregx-coregex/nfa/slot_table.go's "-1 means unset" sentinel design,
// adapted from per-NFA-state integer slots to per-group string slots.
type captures []capture

// grow returns a table with at least n slots, preserving existing
// entries. The original table is left untouched.
func (c captures) grow(n int) captures {
	if len(c) >= n {
		return c
	}
	out := make(captures, n)
	copy(out, c)
	return out
}

// clone returns an independent copy so a failed branch can mutate freely
// without corrupting the caller's table.
func (c captures) clone() captures {
	out := make(captures, len(c))
	copy(out, c)
	return out
}

// get returns the text captured by group n (1-based) and whether it has
// ever been set on this path.
func (c captures) get(n int) (string, bool) {
	idx := n - 1
	if idx < 0 || idx >= len(c) {
		return "", false
	}
	return c[idx].text, c[idx].set
}

// withSet returns a clone of c with group idx (1-based) set to text.
// The table is grown first if necessary.
func (c captures) withSet(n int, text string) captures {
	out := c.grow(n)
	out = out.clone()
	out[n-1] = capture{text: text, set: true}
	return out
}
