package cpu

// Dedicated conditional control-flow helpers (the design-note alternative
// to a higher-order "if flag==cond then run closure" dispatcher): each
// takes the condition directly, fetches its own operand, and returns the
// branch-taken or not-taken T-cycle cost.

func (c *CPU) jrIf(cond bool) int {
	offset := int8(c.fetch8())
	if cond {
		c.Reg.PC = uint16(int32(c.Reg.PC) + int32(offset))
		return 12
	}
	return 8
}

func (c *CPU) jpIf(cond bool) int {
	addr := c.fetch16()
	if cond {
		c.Reg.PC = addr
		return 16
	}
	return 12
}

func (c *CPU) callIf(cond bool) int {
	addr := c.fetch16()
	if cond {
		c.push16(c.Reg.PC)
		c.Reg.PC = addr
		return 24
	}
	return 12
}

func (c *CPU) retIf(cond bool) int {
	if cond {
		c.Reg.PC = c.pop16()
		return 20
	}
	return 8
}

func (c *CPU) rst(addr uint16) int {
	c.push16(c.Reg.PC)
	c.Reg.PC = addr
	return 16
}
