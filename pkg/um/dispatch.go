package um

import "context"

// StopReason distinguishes why Run returned control to the caller.
type StopReason int

const (
	// StopHalted means the machine executed opcode 7.
	StopHalted StopReason = iota
	// StopFault means a terminal execution fault occurred; the
	// accompanying error from Run describes it.
	StopFault
	// StopStepBound means maxSteps platters were executed without
	// halting or faulting; all state is preserved for resumption.
	StopStepBound
	// StopCancelled means ctx was cancelled mid-run.
	StopCancelled
)

// Report summarizes one call to Run.
type Report struct {
	Reason StopReason
	Steps  uint64
}

// Run executes platters starting from the current ip until the
// machine halts, faults, ctx is cancelled, or maxSteps platters have
// executed (maxSteps == 0 means unbounded). It is synchronous: the
// caller regains control only when one of those conditions holds, and
// every instruction it runs completes in full — including any heap
// mutation — before the next is fetched. ctx is sampled once per
// fetched instruction rather than inside Input or Output, since a
// blocking io.Reader/io.Writer call can't be interrupted mid-flight
// without reintroducing a second goroutine.
func (m *Machine) Run(ctx context.Context, maxSteps uint64) (Report, error) {
	var step uint64
	for {
		if m.halted {
			return Report{Reason: StopHalted, Steps: step}, nil
		}
		if maxSteps != 0 && step >= maxSteps {
			return Report{Reason: StopStepBound, Steps: step}, nil
		}
		select {
		case <-ctx.Done():
			return Report{Reason: StopCancelled, Steps: step}, ctx.Err()
		default:
		}

		program := m.heap.program()
		if m.ip >= len(program) {
			return Report{Reason: StopFault, Steps: step}, newFault(m.ip, step, ErrOutOfBounds)
		}
		instr := Decode(program[m.ip])

		if err := m.execute(instr); err != nil {
			return Report{Reason: StopFault, Steps: step}, newFault(m.ip, step, err)
		}
		step++

		if instr.Op != OpLoadProg && !m.halted {
			m.ip++
		}
	}
}

// execute performs one decoded instruction's side effects. It returns
// a non-nil sentinel error on a fault and otherwise leaves m.ip to be
// advanced by the caller (Run), except for OpLoadProg and OpHalt which
// own ip/halted themselves.
func (m *Machine) execute(in Instruction) error {
	switch in.Op {
	case OpCondMove:
		if m.regs[in.C] != 0 {
			m.regs[in.A] = m.regs[in.B]
		}

	case OpArrayIndex:
		v, err := m.heap.read(m.regs[in.B], m.regs[in.C])
		if err != nil {
			return err
		}
		m.regs[in.A] = v

	case OpArrayAmend:
		if err := m.heap.write(m.regs[in.A], m.regs[in.B], m.regs[in.C]); err != nil {
			return err
		}

	case OpAdd:
		m.regs[in.A] = m.regs[in.B] + m.regs[in.C]

	case OpMul:
		m.regs[in.A] = m.regs[in.B] * m.regs[in.C]

	case OpDiv:
		if m.regs[in.C] == 0 {
			return ErrDivideByZero
		}
		m.regs[in.A] = m.regs[in.B] / m.regs[in.C]

	case OpNotAnd:
		m.regs[in.A] = ^(m.regs[in.B] & m.regs[in.C])

	case OpHalt:
		m.halted = true

	case OpAlloc:
		id, err := m.heap.alloc(m.regs[in.C])
		if err != nil {
			return err
		}
		m.regs[in.B] = id

	case OpFree:
		if err := m.heap.free(m.regs[in.C]); err != nil {
			return err
		}

	case OpOutput:
		v := m.regs[in.C]
		if v > 0xFF {
			if m.strictOutput {
				return ErrInvalidOutputByte
			}
			v &= 0xFF
		}
		return m.out.WriteByte(byte(v))

	case OpInput:
		b, eof, err := m.in.ReadByte()
		if err != nil {
			return err
		}
		if eof {
			m.regs[in.C] = 0xFFFFFFFF
		} else {
			m.regs[in.C] = Platter(b)
		}

	case OpLoadProg:
		if _, err := m.heap.loadProgram(m.regs[in.B]); err != nil {
			return err
		}
		m.ip = int(m.regs[in.C])

	default:
		return ErrUndefinedOpcode
	}
	return nil
}
