// Package debugger implements an interactive single-step TUI over an
// emulator.Emulator, grounded on hejops-gone's cpu/debugger.go: a
// bubbletea model rendering a memory page table, register status, and a
// go-spew dump of the PPU's current mode, advanced one step per keypress.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"gbcore/internal/emulator"
)

type model struct {
	emu    *emulator.Emulator
	prevPC uint16
	err    error
	halted bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "n":
			m.prevPC = m.emu.CPU.Regs.PC
			if err := m.emu.Step(); err != nil {
				m.err = err
				return m, nil
			}
			m.halted = m.emu.CPU.Halted()
		}
	}
	return m, nil
}

func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b := m.emu.Bus.Read8(addr)
		if addr == m.emu.CPU.Regs.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "addr | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}
	lines := []string{header}

	base := m.emu.CPU.Regs.PC &^ 0x0F
	for row := -2; row <= 2; row++ {
		start := uint16(int32(base) + int32(row)*16)
		lines = append(lines, m.renderPage(start))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	r := &m.emu.CPU.Regs
	flagChar := func(set bool, c byte) byte {
		if set {
			return c
		}
		return '-'
	}
	flags := []byte{
		flagChar(r.FlagZSet(), 'Z'),
		flagChar(r.FlagNSet(), 'N'),
		flagChar(r.FlagHSet(), 'H'),
		flagChar(r.FlagCSet(), 'C'),
	}
	status := fmt.Sprintf(`
PC: %04x (was %04x)
SP: %04x
 A: %02x  F: %02x [%s]
 B: %02x  C: %02x
 D: %02x  E: %02x
 H: %02x  L: %02x
HALT: %v  IME: %v
`,
		r.PC, m.prevPC, r.SP,
		r.A, r.F, string(flags),
		r.B, r.C, r.D, r.E, r.H, r.L,
		m.halted, m.emu.CPU.IMEEnabled(),
	)
	if m.err != nil {
		status += fmt.Sprintf("\nFAULT: %v\n", m.err)
	}
	return status
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		spew.Sdump(m.emu.Bus.PPU.Mode()),
		"space/n: step    q: quit",
	)
}

// Run starts the interactive step debugger against an already-loaded
// emulator.
func Run(e *emulator.Emulator) error {
	p := tea.NewProgram(model{emu: e, prevPC: e.CPU.Regs.PC})
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok && m.err != nil {
		return m.err
	}
	return nil
}
