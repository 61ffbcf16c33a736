// Package trace formats gameboy-doctor-compatible trace lines and
// persists/compares golden traces using gob-based checkpoint persistence.
package trace

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/sm83/gbcore/pkg/machine"
)

// Line is one gameboy-doctor-format trace line.
type Line struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
	PCMem                  [4]uint8
}

func init() {
	gob.Register(Line{})
}

// Capture reads the current register/memory state of m into a Line.
func Capture(m *machine.Machine) Line {
	pc := m.CPU.Reg.PC
	return Line{
		A: m.CPU.Reg.A, F: m.CPU.Reg.F, B: m.CPU.Reg.B, C: m.CPU.Reg.C,
		D: m.CPU.Reg.D, E: m.CPU.Reg.E, H: m.CPU.Reg.H, L: m.CPU.Reg.L,
		SP: m.CPU.Reg.SP, PC: pc,
		PCMem: [4]uint8{
			m.ReadByte(pc), m.ReadByte(pc + 1), m.ReadByte(pc + 2), m.ReadByte(pc + 3),
		},
	}
}

// Format renders a Line in the exact gameboy-doctor layout.
func (l Line) Format() string {
	return fmt.Sprintf(
		"A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X PCMEM:%02X,%02X,%02X,%02X",
		l.A, l.F, l.B, l.C, l.D, l.E, l.H, l.L, l.SP, l.PC,
		l.PCMem[0], l.PCMem[1], l.PCMem[2], l.PCMem[3],
	)
}

// WriteLine emits one formatted trace line to w.
func WriteLine(w io.Writer, l Line) error {
	_, err := fmt.Fprintln(w, l.Format())
	return err
}

// Golden is a saved run: a sequence of captured lines, persisted with
// encoding/gob.
type Golden struct {
	Lines []Line
}

// SaveGolden writes g to path as a gob stream.
func SaveGolden(path string, g Golden) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create golden trace: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := gob.NewEncoder(w).Encode(g); err != nil {
		return fmt.Errorf("encode golden trace: %w", err)
	}
	return w.Flush()
}

// LoadGolden reads a gob-encoded Golden from path.
func LoadGolden(path string) (Golden, error) {
	f, err := os.Open(path)
	if err != nil {
		return Golden{}, fmt.Errorf("open golden trace: %w", err)
	}
	defer f.Close()
	var g Golden
	if err := gob.NewDecoder(f).Decode(&g); err != nil {
		return Golden{}, fmt.Errorf("decode golden trace: %w", err)
	}
	return g, nil
}

// Divergence describes the first point at which two traces disagree.
type Divergence struct {
	Index    int
	Got      Line
	Expected Line
}

// Compare returns the first index at which got and want differ, or ok=false
// if they match line-for-line (a shorter slice is a divergence at its own
// length).
func Compare(got, want []Line) (d Divergence, ok bool) {
	n := len(got)
	if len(want) < n {
		n = len(want)
	}
	for i := 0; i < n; i++ {
		if got[i] != want[i] {
			return Divergence{Index: i, Got: got[i], Expected: want[i]}, true
		}
	}
	if len(got) != len(want) {
		idx := n
		var g, w Line
		if idx < len(got) {
			g = got[idx]
		}
		if idx < len(want) {
			w = want[idx]
		}
		return Divergence{Index: idx, Got: g, Expected: w}, true
	}
	return Divergence{}, false
}

// SerialSink adapts an io.Writer to mem.SerialSink for the debug serial
// handshake.
type SerialSink struct {
	W io.Writer
}

func (s SerialSink) WriteByte(b byte) { fmt.Fprint(s.W, string(rune(b))) }
