package render

import "strconv"

// DefaultIDPrefix starts every correlation id, keeping ids valid Angular
// template reference names.
const DefaultIDPrefix = "app"

// IDSource hands out correlation ids linking a filename label's tabs to the
// code variants they toggle.
type IDSource interface {
	Next() string
}

// Counter yields prefix1, prefix2, ... in hexadecimal. It is scoped to one
// compile pass and is not safe for concurrent use.
type Counter struct {
	prefix string
	n      uint64
}

// NewCounter creates a Counter with the given prefix.
func NewCounter(prefix string) *Counter {
	return &Counter{prefix: prefix}
}

// Next implements IDSource.
func (c *Counter) Next() string {
	c.n++
	return c.prefix + strconv.FormatUint(c.n, 16)
}
