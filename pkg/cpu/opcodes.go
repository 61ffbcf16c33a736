package cpu

// baseOps is the 256-entry base opcode table. Regular blocks (8-bit loads,
// the ALU register/immediate forms, INC/DEC, the 16-bit pair group, the
// conditional branch group, RST) are generated from their own bit
// structure in init(), the same discipline cb.go applies to the
// CB-prefixed table; only the genuinely irregular opcodes are hand-listed.
var baseOps [256]opFunc

func init() {
	// 0x40-0x7F: LD r,r' (0x76 is HALT, handled separately below).
	for op := 0x40; op <= 0x7F; op++ {
		op := uint8(op)
		if op == 0x76 {
			continue
		}
		dst := uint((op >> 3) & 7)
		src := uint(op & 7)
		cost := 4
		if dst == 6 || src == 6 {
			cost = 8
		}
		baseOps[op] = makeLdRR(dst, src, cost)
	}
	baseOps[0x76] = opHalt

	// 0x80-0xBF: ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,r8.
	for op := 0x80; op <= 0xBF; op++ {
		op := uint8(op)
		aluOp := uint((op >> 3) & 7)
		regIdx := uint(op & 7)
		cost := 4
		if regIdx == 6 {
			cost = 8
		}
		baseOps[op] = makeAluReg(aluOp, regIdx, cost)
	}

	// INC r8 / DEC r8 / LD r8,n — the three per-register 8-opcode columns
	// at 0x04/0x05/0x06 + 8*regIdx.
	for i := uint(0); i < 8; i++ {
		regIdx := i
		incCost, decCost, ldCost := 4, 4, 8
		if regIdx == 6 {
			incCost, decCost, ldCost = 12, 12, 12
		}
		baseOps[0x04+8*uint8(i)] = makeInc(regIdx, incCost)
		baseOps[0x05+8*uint8(i)] = makeDec(regIdx, decCost)
		baseOps[0x06+8*uint8(i)] = makeLdImm(regIdx, ldCost)
	}

	// 16-bit pair group {BC,DE,HL,SP}: LD rr,nn / INC rr / DEC rr /
	// ADD HL,rr, plus PUSH/POP which use the {BC,DE,HL,AF} ordering.
	for i := uint(0); i < 4; i++ {
		idx := i
		baseOps[0x01+0x10*uint8(i)] = makeLdRRnn(idx)
		baseOps[0x03+0x10*uint8(i)] = makeIncRR(idx)
		baseOps[0x0B+0x10*uint8(i)] = makeDecRR(idx)
		baseOps[0x09+0x10*uint8(i)] = makeAddHLRR(idx)
		baseOps[0xC5+0x10*uint8(i)] = makePush(idx)
		baseOps[0xC1+0x10*uint8(i)] = makePop(idx)
	}

	// Conditional group {NZ,Z,NC,C}: JR/JP/CALL/RET.
	for i := uint(0); i < 4; i++ {
		idx := i
		baseOps[0x20+8*uint8(i)] = func(c *CPU) (int, error) { return c.jrIf(c.checkCond(idx)), nil }
		baseOps[0xC2+8*uint8(i)] = func(c *CPU) (int, error) { return c.jpIf(c.checkCond(idx)), nil }
		baseOps[0xC4+8*uint8(i)] = func(c *CPU) (int, error) { return c.callIf(c.checkCond(idx)), nil }
		baseOps[0xC0+8*uint8(i)] = func(c *CPU) (int, error) { return c.retIf(c.checkCond(idx)), nil }
	}

	// RST 00h..38h.
	for i := uint(0); i < 8; i++ {
		target := uint16(8 * i)
		baseOps[0xC7+8*uint8(i)] = func(c *CPU) (int, error) { return c.rst(target), nil }
	}

	// ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,n — the immediate mirror of the
	// 0x80-0xBF block, same ALU op ordering.
	for i := uint(0); i < 8; i++ {
		aluOp := i
		baseOps[0xC6+8*uint8(i)] = func(c *CPU) (int, error) {
			n := c.fetch8()
			c.applyALU(aluOp, n)
			return 8, nil
		}
	}

	baseOps[0x00] = opNop
	baseOps[0x02] = opLdBCIndA
	baseOps[0x07] = opRlca
	baseOps[0x08] = opLdNNSP
	baseOps[0x0A] = opLdABCInd
	baseOps[0x0F] = opRrca
	baseOps[0x10] = opStop
	baseOps[0x12] = opLdDEIndA
	baseOps[0x17] = opRla
	baseOps[0x18] = opJr
	baseOps[0x1A] = opLdADEInd
	baseOps[0x1F] = opRra
	baseOps[0x22] = opLdHLIncA
	baseOps[0x27] = opDaa
	baseOps[0x2A] = opLdAHLInc
	baseOps[0x2F] = opCpl
	baseOps[0x32] = opLdHLDecA
	baseOps[0x37] = opScf
	baseOps[0x3A] = opLdAHLDec
	baseOps[0x3F] = opCcf
	baseOps[0xC3] = opJpNN
	baseOps[0xC9] = opRet
	baseOps[0xCB] = opPrefixCB
	baseOps[0xCD] = opCallNN
	baseOps[0xD9] = opReti
	baseOps[0xE0] = opLdhNA
	baseOps[0xE2] = opLdCIndA
	baseOps[0xE8] = opAddSPI8
	baseOps[0xE9] = opJpHL
	baseOps[0xEA] = opLdNNA
	baseOps[0xF0] = opLdhAN
	baseOps[0xF2] = opLdACInd
	baseOps[0xF3] = opDi
	baseOps[0xF8] = opLdHLSPI8
	baseOps[0xF9] = opLdSPHL
	baseOps[0xFA] = opLdANN
	baseOps[0xFB] = opEi

	// Unused opcodes are left nil; Step reports IllegalInstructionError.
}

func (c *CPU) applyALU(aluOp uint, n uint8) {
	a := c.Reg.A
	switch aluOp {
	case 0:
		res, fl := add8(a, n, false)
		c.Reg.A = res
		fl.apply(&c.Reg)
	case 1:
		res, fl := add8(a, n, c.Reg.GetFlag(FlagC))
		c.Reg.A = res
		fl.apply(&c.Reg)
	case 2:
		res, fl := sub8(a, n, false)
		c.Reg.A = res
		fl.apply(&c.Reg)
	case 3:
		res, fl := sub8(a, n, c.Reg.GetFlag(FlagC))
		c.Reg.A = res
		fl.apply(&c.Reg)
	case 4:
		res, fl := and8(a, n)
		c.Reg.A = res
		fl.apply(&c.Reg)
	case 5:
		res, fl := xor8(a, n)
		c.Reg.A = res
		fl.apply(&c.Reg)
	case 6:
		res, fl := or8(a, n)
		c.Reg.A = res
		fl.apply(&c.Reg)
	default:
		_, fl := sub8(a, n, false)
		fl.apply(&c.Reg)
	}
}

func makeLdRR(dst, src uint, cost int) opFunc {
	return func(c *CPU) (int, error) {
		c.writeOperand8(dst, c.readOperand8(src))
		return cost, nil
	}
}

func makeAluReg(aluOp, regIdx uint, cost int) opFunc {
	return func(c *CPU) (int, error) {
		c.applyALU(aluOp, c.readOperand8(regIdx))
		return cost, nil
	}
}

func makeInc(regIdx uint, cost int) opFunc {
	return func(c *CPU) (int, error) {
		old := c.readOperand8(regIdx)
		result, fl := inc8(old)
		fl.c = c.Reg.GetFlag(FlagC)
		c.writeOperand8(regIdx, result)
		fl.apply(&c.Reg)
		return cost, nil
	}
}

func makeDec(regIdx uint, cost int) opFunc {
	return func(c *CPU) (int, error) {
		old := c.readOperand8(regIdx)
		result, fl := dec8(old)
		fl.c = c.Reg.GetFlag(FlagC)
		c.writeOperand8(regIdx, result)
		fl.apply(&c.Reg)
		return cost, nil
	}
}

func makeLdImm(regIdx uint, cost int) opFunc {
	return func(c *CPU) (int, error) {
		c.writeOperand8(regIdx, c.fetch8())
		return cost, nil
	}
}

func makeLdRRnn(idx uint) opFunc {
	return func(c *CPU) (int, error) {
		c.writePair16(idx, c.fetch16())
		return 12, nil
	}
}

func makeIncRR(idx uint) opFunc {
	return func(c *CPU) (int, error) {
		c.writePair16(idx, c.readPair16(idx)+1)
		return 8, nil
	}
}

func makeDecRR(idx uint) opFunc {
	return func(c *CPU) (int, error) {
		c.writePair16(idx, c.readPair16(idx)-1)
		return 8, nil
	}
}

func makeAddHLRR(idx uint) opFunc {
	return func(c *CPU) (int, error) {
		result, fl := addHL16(c.Reg.HL(), c.readPair16(idx))
		fl.z = c.Reg.GetFlag(FlagZ)
		c.Reg.SetHL(result)
		fl.apply(&c.Reg)
		return 8, nil
	}
}

func makePush(idx uint) opFunc {
	return func(c *CPU) (int, error) {
		c.push16(c.readPushPop16(idx))
		return 16, nil
	}
}

func makePop(idx uint) opFunc {
	return func(c *CPU) (int, error) {
		c.writePushPop16(idx, c.pop16())
		return 12, nil
	}
}

func opNop(c *CPU) (int, error) { return 4, nil }

func opLdBCIndA(c *CPU) (int, error) { c.Bus.WriteByte(c.Reg.BC(), c.Reg.A); return 8, nil }
func opLdABCInd(c *CPU) (int, error) { c.Reg.A = c.Bus.ReadByte(c.Reg.BC()); return 8, nil }
func opLdDEIndA(c *CPU) (int, error) { c.Bus.WriteByte(c.Reg.DE(), c.Reg.A); return 8, nil }
func opLdADEInd(c *CPU) (int, error) { c.Reg.A = c.Bus.ReadByte(c.Reg.DE()); return 8, nil }

func opLdHLIncA(c *CPU) (int, error) {
	hl := c.Reg.HL()
	c.Bus.WriteByte(hl, c.Reg.A)
	c.Reg.SetHL(hl + 1)
	return 8, nil
}

func opLdAHLInc(c *CPU) (int, error) {
	hl := c.Reg.HL()
	c.Reg.A = c.Bus.ReadByte(hl)
	c.Reg.SetHL(hl + 1)
	return 8, nil
}

func opLdHLDecA(c *CPU) (int, error) {
	hl := c.Reg.HL()
	c.Bus.WriteByte(hl, c.Reg.A)
	c.Reg.SetHL(hl - 1)
	return 8, nil
}

func opLdAHLDec(c *CPU) (int, error) {
	hl := c.Reg.HL()
	c.Reg.A = c.Bus.ReadByte(hl)
	c.Reg.SetHL(hl - 1)
	return 8, nil
}

func opRlca(c *CPU) (int, error) {
	result, fl := rlc(c.Reg.A)
	c.Reg.A = result
	fl.z = false
	fl.apply(&c.Reg)
	return 4, nil
}

func opRrca(c *CPU) (int, error) {
	result, fl := rrc(c.Reg.A)
	c.Reg.A = result
	fl.z = false
	fl.apply(&c.Reg)
	return 4, nil
}

func opRla(c *CPU) (int, error) {
	result, fl := rl(c.Reg.A, c.Reg.GetFlag(FlagC))
	c.Reg.A = result
	fl.z = false
	fl.apply(&c.Reg)
	return 4, nil
}

func opRra(c *CPU) (int, error) {
	result, fl := rr(c.Reg.A, c.Reg.GetFlag(FlagC))
	c.Reg.A = result
	fl.z = false
	fl.apply(&c.Reg)
	return 4, nil
}

func opLdNNSP(c *CPU) (int, error) {
	addr := c.fetch16()
	c.Bus.WriteWord(addr, c.Reg.SP)
	return 20, nil
}

func opStop(c *CPU) (int, error) {
	pc := c.Reg.PC
	operand := c.fetch8()
	if operand != 0x00 {
		return 0, &UnexpectedStopOperandError{Operand: operand, PC: pc}
	}
	c.Stopped = true
	return 4, nil
}

func opJr(c *CPU) (int, error) { return c.jrIf(true), nil }

func opDaa(c *CPU) (int, error) {
	result, fl := daa(c.Reg.A, c.Reg.GetFlag(FlagN), c.Reg.GetFlag(FlagH), c.Reg.GetFlag(FlagC))
	c.Reg.A = result
	fl.apply(&c.Reg)
	return 4, nil
}

func opCpl(c *CPU) (int, error) {
	c.Reg.A = cpl(c.Reg.A)
	c.Reg.SetFlag(FlagN, true)
	c.Reg.SetFlag(FlagH, true)
	return 4, nil
}

func opScf(c *CPU) (int, error) {
	c.Reg.SetFlag(FlagC, true)
	c.Reg.SetFlag(FlagN, false)
	c.Reg.SetFlag(FlagH, false)
	return 4, nil
}

func opCcf(c *CPU) (int, error) {
	c.Reg.SetFlag(FlagC, !c.Reg.GetFlag(FlagC))
	c.Reg.SetFlag(FlagN, false)
	c.Reg.SetFlag(FlagH, false)
	return 4, nil
}

func opHalt(c *CPU) (int, error) {
	c.Halted = true
	return 4, nil
}

func opJpNN(c *CPU) (int, error) { c.Reg.PC = c.fetch16(); return 16, nil }
func opJpHL(c *CPU) (int, error) { c.Reg.PC = c.Reg.HL(); return 4, nil }

func opRet(c *CPU) (int, error) { c.Reg.PC = c.pop16(); return 16, nil }

func opReti(c *CPU) (int, error) {
	c.Reg.PC = c.pop16()
	c.IME = true
	c.ImeEnablePending = false
	return 16, nil
}

func opPrefixCB(c *CPU) (int, error) {
	op := c.fetch8()
	fn := cbOps[op]
	return fn(c)
}

func opCallNN(c *CPU) (int, error) { return c.callIf(true), nil }

func opLdhNA(c *CPU) (int, error) {
	offset := c.fetch8()
	c.Bus.WriteByte(0xFF00+uint16(offset), c.Reg.A)
	return 12, nil
}

func opLdhAN(c *CPU) (int, error) {
	offset := c.fetch8()
	c.Reg.A = c.Bus.ReadByte(0xFF00 + uint16(offset))
	return 12, nil
}

func opLdCIndA(c *CPU) (int, error) {
	c.Bus.WriteByte(0xFF00+uint16(c.Reg.C), c.Reg.A)
	return 8, nil
}

func opLdACInd(c *CPU) (int, error) {
	c.Reg.A = c.Bus.ReadByte(0xFF00 + uint16(c.Reg.C))
	return 8, nil
}

func opLdNNA(c *CPU) (int, error) {
	addr := c.fetch16()
	c.Bus.WriteByte(addr, c.Reg.A)
	return 16, nil
}

func opLdANN(c *CPU) (int, error) {
	addr := c.fetch16()
	c.Reg.A = c.Bus.ReadByte(addr)
	return 16, nil
}

func opDi(c *CPU) (int, error) {
	c.IME = false
	c.ImeEnablePending = false
	return 4, nil
}

func opEi(c *CPU) (int, error) {
	c.ImeEnablePending = true
	return 4, nil
}

func opAddSPI8(c *CPU) (int, error) {
	offset := int8(c.fetch8())
	result, fl := addSPSigned(c.Reg.SP, offset)
	c.Reg.SP = result
	fl.apply(&c.Reg)
	return 16, nil
}

func opLdHLSPI8(c *CPU) (int, error) {
	offset := int8(c.fetch8())
	result, fl := addSPSigned(c.Reg.SP, offset)
	c.Reg.SetHL(result)
	fl.apply(&c.Reg)
	return 12, nil
}

func opLdSPHL(c *CPU) (int, error) {
	c.Reg.SP = c.Reg.HL()
	return 8, nil
}
