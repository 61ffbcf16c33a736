package cpu

// cbOps is the 256-entry CB-prefixed table, generated from the opcode's
// own bit structure rather than hand-enumerated: bits 7..6 select a group
// (00 rotate/shift, 01 BIT, 10 RES, 11 SET), bits 5..3 select a bit index
// (groups 01/10/11) or a rotate/shift sub-op (group 00), and bits 2..0
// select the operand in CB order {B,C,D,E,H,L,(HL),A}. Hand-enumerating
// this table is exactly the 512-entry duplication bug the original source
// fell into (its drafts disagree on which flags BIT touches); generating
// it from the encoding can't drift.
var cbOps [256]opFunc

func init() {
	for op := 0; op < 256; op++ {
		op := uint8(op)
		group := op >> 6
		mid := uint((op >> 3) & 7)
		regIdx := uint(op & 7)

		var cost int
		if regIdx == 6 {
			if group == 1 {
				cost = 12
			} else {
				cost = 16
			}
		} else {
			cost = 8
		}

		switch group {
		case 0:
			subOp := mid
			cbOps[op] = makeRotateShift(subOp, regIdx, cost)
		case 1:
			cbOps[op] = makeBit(mid, regIdx, cost)
		case 2:
			cbOps[op] = makeRes(mid, regIdx, cost)
		default:
			cbOps[op] = makeSet(mid, regIdx, cost)
		}
	}
}

func makeRotateShift(subOp, regIdx uint, cost int) opFunc {
	return func(c *CPU) (int, error) {
		x := c.readOperand8(regIdx)
		var result uint8
		var fl flags
		switch subOp {
		case 0:
			result, fl = rlc(x)
		case 1:
			result, fl = rrc(x)
		case 2:
			result, fl = rl(x, c.Reg.GetFlag(FlagC))
		case 3:
			result, fl = rr(x, c.Reg.GetFlag(FlagC))
		case 4:
			result, fl = sla(x)
		case 5:
			result, fl = sra(x)
		case 6:
			result, fl = swap(x)
		default:
			result, fl = srl(x)
		}
		c.writeOperand8(regIdx, result)
		fl.apply(&c.Reg)
		return cost, nil
	}
}

func makeBit(bit, regIdx uint, cost int) opFunc {
	return func(c *CPU) (int, error) {
		x := c.readOperand8(regIdx)
		z, h := bitTest(bit, x)
		c.Reg.SetFlag(FlagZ, z)
		c.Reg.SetFlag(FlagN, false)
		c.Reg.SetFlag(FlagH, h)
		return cost, nil
	}
}

func makeRes(bit, regIdx uint, cost int) opFunc {
	return func(c *CPU) (int, error) {
		c.writeOperand8(regIdx, resBit(bit, c.readOperand8(regIdx)))
		return cost, nil
	}
}

func makeSet(bit, regIdx uint, cost int) opFunc {
	return func(c *CPU) (int, error) {
		c.writeOperand8(regIdx, setBit(bit, c.readOperand8(regIdx)))
		return cost, nil
	}
}
