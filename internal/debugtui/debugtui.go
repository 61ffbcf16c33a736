// Package debugtui implements the `gbcore debug` interactive single-step
// debugger: a bubbletea Elm-architecture model over a Machine, adapted
// from hejops-gone's cpu.Debug NES debugger to the SM83 register/flag
// layout.
package debugtui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/sm83/gbcore/pkg/inst"
	"github.com/sm83/gbcore/pkg/machine"
	"github.com/sm83/gbcore/pkg/trace"
)

type model struct {
	m      *machine.Machine
	prevPC uint16
	err    error
}

// Init performs no initial command; the machine is already loaded by the
// caller.
func (md model) Init() tea.Cmd { return nil }

func (md model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return md, tea.Quit
		case " ", "j":
			md.prevPC = md.m.CPU.Reg.PC
			if _, err := md.m.Step(); err != nil {
				md.err = err
				return md, tea.Quit
			}
		}
	}
	return md, nil
}

// renderPage renders one 16-byte memory row, highlighting the current PC.
func (md model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b := md.m.ReadByte(addr)
		if addr == md.m.CPU.Reg.PC {
			s += fmt.Sprintf("[%02X] ", b)
		} else {
			s += fmt.Sprintf(" %02X  ", b)
		}
	}
	return s
}

// currentInstruction disassembles the opcode at PC, reading the CB second
// byte into play when the opcode is the CB prefix.
func (md model) currentInstruction() string {
	pc := md.m.CPU.Reg.PC
	op := md.m.ReadByte(pc)
	if op == 0xCB {
		cbOp := md.m.ReadByte(pc + 1)
		return inst.CB[cbOp].Mnemonic
	}
	info := inst.Base[op]
	operands := make([]uint8, 0, 2)
	for i := 1; i < info.Length; i++ {
		operands = append(operands, md.m.ReadByte(pc+uint16(i)))
	}
	return inst.Disassemble(op, operands)
}

func (md model) pageTable() string {
	header := "addr  | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01X  ", b)
	}
	rows := []string{header}
	base := md.m.CPU.Reg.PC &^ 0x0F
	for i := -2; i <= 2; i++ {
		rows = append(rows, md.renderPage(uint16(int32(base)+int32(i)*16)))
	}
	return strings.Join(rows, "\n")
}

func (md model) status() string {
	r := md.m.CPU.Reg
	flagChar := func(set bool, ch byte) byte {
		if set {
			return ch
		}
		return '-'
	}
	flags := []byte{
		flagChar(r.GetFlag(0x80), 'Z'),
		flagChar(r.GetFlag(0x40), 'N'),
		flagChar(r.GetFlag(0x20), 'H'),
		flagChar(r.GetFlag(0x10), 'C'),
	}
	return fmt.Sprintf(`
next: %s
PC: %04X (was %04X)
SP: %04X
A:%02X F:%02X  [%s]
B:%02X C:%02X  BC:%04X
D:%02X E:%02X  DE:%04X
H:%02X L:%02X  HL:%04X
IME:%v HALT:%v STOP:%v
cycles: %d
`,
		md.currentInstruction(),
		r.PC, md.prevPC, r.SP,
		r.A, r.F, string(flags),
		r.B, r.C, r.BC(),
		r.D, r.E, r.DE(),
		r.H, r.L, r.HL(),
		md.m.CPU.IME, md.m.CPU.Halted, md.m.CPU.Stopped,
		r.Cycles,
	)
}

func (md model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			md.pageTable(),
			md.status(),
		),
		"",
		trace.Capture(md.m).Format(),
		"",
		spew.Sdump(md.m.CPU.Reg),
		"space/j: step   q: quit",
	)
}

// Run starts the interactive debugger over an already-loaded machine.
func Run(m *machine.Machine) error {
	prog := tea.NewProgram(model{m: m, prevPC: m.CPU.Reg.PC})
	final, err := prog.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
