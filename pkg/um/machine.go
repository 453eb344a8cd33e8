package um

// Machine is one Universal Machine instance: eight registers, an
// instruction pointer, the array heap, and the halted flag. It is not
// reentrant — it models a single-threaded, strictly sequential
// abstract machine, and Machine.Run must not be called concurrently
// with itself on the same instance.
type Machine struct {
	regs   [NumRegisters]Platter
	ip     int
	heap   *arrayHeap
	halted bool

	in  InputSource
	out OutputSink

	strictOutput bool
}

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithLenientOutput makes Output mask its operand to the low 8 bits
// instead of faulting when the register holds a value outside
// [0,255]. The default is strict, since a scroll that writes a
// non-byte value to Output is far more likely buggy than intentional.
func WithLenientOutput() Option {
	return func(m *Machine) { m.strictOutput = false }
}

// New constructs a Machine with program seeded as array 0. program is
// typically the result of LoadScroll.
func New(program []Platter, in InputSource, out OutputSink, opts ...Option) *Machine {
	m := &Machine{
		heap:         newArrayHeap(program),
		in:           in,
		out:          out,
		strictOutput: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registers returns a snapshot of the eight general-purpose registers.
func (m *Machine) Registers() [NumRegisters]Platter { return m.regs }

// IP returns the current instruction pointer.
func (m *Machine) IP() int { return m.ip }

// Halted reports whether the machine reached opcode 7 (clean halt).
// It is false for a machine that stopped on a fault, a step-bound
// early return, or context cancellation.
func (m *Machine) Halted() bool { return m.halted }

// ProgramLen returns the current length of array 0, mainly useful for
// asserting the deep-copy contract of LoadProg after the fact.
func (m *Machine) ProgramLen() int { return len(m.heap.program()) }
