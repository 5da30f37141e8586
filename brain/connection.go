package brain

import (
	"fmt"

	"github.com/google/uuid"
)

// Connection is a directed, weighted edge owned by its destination neuron.
// The source is referenced without being owned: once the source neuron is
// removed from its topology the connection is dead until pruned.
type Connection struct {
	Weight float64
	// Exponent raises the source output to this power before weighting.
	Exponent int

	source ref
}

// IsAlive reports whether the source neuron still resolves.
func (c *Connection) IsAlive() bool {
	return c.source.valid()
}

// Source returns the source neuron, or false if it was removed.
func (c *Connection) Source() (*Neuron, bool) {
	return c.source.resolve()
}

// ID returns the source neuron's identifier, or uuid.Nil when dead.
func (c *Connection) ID() uuid.UUID {
	if n, ok := c.source.resolve(); ok {
		return n.id
	}
	return uuid.Nil
}

// String returns a string representation of the Connection.
func (c *Connection) String() string {
	src := "dead"
	if n, ok := c.source.resolve(); ok {
		src = n.id.String()
	}
	return fmt.Sprintf("Conn(Src: %s, Weight: %.3f, Exp: %d)", src, c.Weight, c.Exponent)
}
