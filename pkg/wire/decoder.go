package wire

// Decoder reassembles frames from an incoming byte stream.
//
// It consumes input one byte at a time and keeps at most one partial
// frame of internal state, so the memory footprint is fixed regardless
// of how the transport fragments the data. Anything that cannot be part
// of a well-formed frame switches the decoder into a skipping state
// until the next terminator, after which decoding resumes cleanly.
type Decoder struct {
	state   decodeState
	name    [MaxNameLen]byte
	nameLen int
	value   int
	digits  int
	neg     bool
	size    int
}

type decodeState int

const (
	stateName decodeState = iota // accumulating the command name
	stateSign                    // first value byte, optional '-'
	stateValue                   // accumulating decimal digits
	stateSkip                    // discarding until next terminator
)

// Parse consumes one byte and reports a completed frame, if any.
func (d *Decoder) Parse(b byte) (f Frame, ok bool) {
	if b == '\r' {
		// tolerate CRLF line endings from loopback tools
		return
	}
	d.size++
	if d.state != stateSkip && d.size > MaxFrameSize {
		d.state = stateSkip
	}
	switch d.state {
	case stateName:
		switch {
		case nameByte(b) && d.nameLen < MaxNameLen:
			d.name[d.nameLen] = b
			d.nameLen++
		case b == Delimiter && d.nameLen > 0:
			d.state = stateSign
		default:
			d.skip(b)
		}
	case stateSign:
		switch {
		case b == '-':
			d.neg = true
			d.state = stateValue
		case b >= '0' && b <= '9':
			d.value = int(b - '0')
			d.digits = 1
			d.state = stateValue
		default:
			d.skip(b)
		}
	case stateValue:
		switch {
		case b >= '0' && b <= '9':
			d.value = d.value*10 + int(b-'0')
			d.digits++
		case b == Terminator && d.digits > 0:
			f = Frame{Name: string(d.name[:d.nameLen]), Value: d.value}
			if d.neg {
				f.Value = -f.Value
			}
			ok = true
			d.reset()
		default:
			d.skip(b)
		}
	case stateSkip:
		if b == Terminator {
			d.reset()
		}
	}
	return
}

// Feed consumes a chunk of bytes and returns all frames completed by it.
// Trailing partial input is retained for the next call.
func (d *Decoder) Feed(p []byte) (frames []Frame) {
	for _, b := range p {
		if f, ok := d.Parse(b); ok {
			frames = append(frames, f)
		}
	}
	return
}

func (d *Decoder) skip(b byte) {
	if b == Terminator {
		d.reset()
	} else {
		d.state = stateSkip
	}
}

func (d *Decoder) reset() {
	*d = Decoder{}
}
