package cords

import "github.com/go-textrope/cords/metric"

// The destructive API below is a thin façade over the persistent API: each
// method computes the persistent result and rebinds the receiver's root to
// it. No algorithm is duplicated, matching Design Note "two APIs, one
// core". Because the prior root is never touched, other Cord values that
// shared it are unaffected — "mutation" only ever rebinds this one
// caller's handle.

// InsertInPlace splices text in at metric-m position i, mutating c to
// refer to the result.
func (c *Cord) InsertInPlace(m metric.Metric, i uint64, text string) error {
	out, err := c.Insert(m, i, text)
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// InsertRopeInPlace splices other in at metric-m position i, mutating c
// to refer to the result.
func (c *Cord) InsertRopeInPlace(m metric.Metric, i uint64, other Cord) error {
	out, err := c.InsertRope(m, i, other)
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// DeleteInPlace removes the metric-m half-open range [from, to), mutating
// c to refer to the result.
func (c *Cord) DeleteInPlace(m metric.Metric, from, to uint64) error {
	out, err := c.Delete(m, from, to)
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// SplitInPlace splits c at metric-m position i, mutating c to hold the
// left part and returning the right part.
func (c *Cord) SplitInPlace(m metric.Metric, i uint64) (Cord, error) {
	l, r, err := c.Split(m, i)
	if err != nil {
		return Cord{}, err
	}
	*c = l
	return r, nil
}

// AppendInPlace appends other to c, mutating c to refer to the result.
func (c *Cord) AppendInPlace(other Cord) {
	*c = c.Append(other)
}

// RebalanceInPlace rebalances c's tree in place, without changing its
// text.
func (c *Cord) RebalanceInPlace() {
	*c = c.Rebalance()
}
