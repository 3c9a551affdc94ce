package mips

import "sysy/ir"

// scratchRegs is the small pool used for evaluating expressions that
// aren't callee-saved register residents (§4.H "Register plan"). $t7 is
// reserved for the loop-induction peephole and excluded here.
var scratchRegs = []string{"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6"}

// tempPool hands out scratch registers within a single instruction's
// codegen; freeing happens once the instruction's result has been stored
// to its final home (register or spill slot), keeping allocation scoped
// to one instruction at a time rather than tracked across a block.
type tempPool struct {
	next int
}

func (p *tempPool) alloc() string {
	r := scratchRegs[p.next%len(scratchRegs)]
	p.next++
	return r
}

func (p *tempPool) reset() { p.next = 0 }

// blockRegCache is the per-block, two-slot, most-recent-first load cache
// of §4.H's register plan ($t8/$t9), FIFO-evicted.
type blockRegCache struct {
	regs   [2]string
	values [2]ir.Value
	evict  int
}

func newBlockRegCache() *blockRegCache {
	return &blockRegCache{regs: [2]string{"$t8", "$t9"}}
}

func (c *blockRegCache) get(v ir.Value) string {
	for i, cv := range c.values {
		if cv == v && v != nil {
			return c.regs[i]
		}
	}
	return ""
}

func (c *blockRegCache) bind(v ir.Value) string {
	if r := c.get(v); r != "" {
		return r
	}
	for i, cv := range c.values {
		if cv == nil {
			c.values[i] = v
			return c.regs[i]
		}
	}
	idx := c.evict
	c.evict = (c.evict + 1) % len(c.values)
	c.values[idx] = v
	return c.regs[idx]
}

func (c *blockRegCache) invalidate(v ir.Value) {
	for i, cv := range c.values {
		if cv == v {
			c.values[i] = nil
		}
	}
}

func (c *blockRegCache) invalidateAll() {
	c.values[0], c.values[1] = nil, nil
}

func (c *blockRegCache) reset() {
	c.values[0], c.values[1] = nil, nil
	c.evict = 0
}
