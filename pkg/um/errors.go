package um

import "github.com/pkg/errors"

// Sentinel faults. Run wraps each execution fault in a *Fault that
// carries the instruction pointer and a stack trace captured where Run
// detected it. ErrMalformedScroll is the exception: LoadScroll returns
// it directly, before any Machine exists.
var (
	ErrDivideByZero      = errors.New("division by zero")
	ErrUnknownArray      = errors.New("reference to unknown array")
	ErrOutOfBounds       = errors.New("array offset out of bounds")
	ErrFreeArray0        = errors.New("attempt to free array 0")
	ErrFreeUnknownArray  = errors.New("attempt to free unknown array")
	ErrInvalidOutputByte = errors.New("output value outside [0,255]")
	ErrUnknownLoadSource = errors.New("load program from unknown array")
	ErrUndefinedOpcode   = errors.New("undefined opcode")
	ErrIdSpaceExhausted  = errors.New("array id space exhausted")
	ErrMalformedScroll   = errors.New("scroll length is not a multiple of 4")
)

// Fault is the host-visible terminal condition distinct from a clean
// halt. It wraps one of the sentinels above, or an error returned by
// the machine's InputSource or OutputSink.
type Fault struct {
	IP   int
	Step uint64
	err  error
}

func (f *Fault) Error() string {
	return errors.Wrapf(f.err, "fault at ip=%d (step %d)", f.IP, f.Step).Error()
}

func (f *Fault) Unwrap() error { return f.err }

func newFault(ip int, step uint64, err error) *Fault {
	return &Fault{IP: ip, Step: step, err: errors.WithStack(err)}
}
