package keys

import (
	"context"
	"errors"
	"io"
)

type state int

const (
	stateIdle state = iota
	stateEscape
	stateCSI
	stateSS3
	stateTilde
	stateDiscard
)

// machine is the escape sequence state. It consumes exactly one byte per
// transition so truncated sequences can be resolved by expire.
type machine struct {
	state state
	digit byte
}

// feed advances the machine by one byte. done reports that k is final.
func (m *machine) feed(b byte) (k Key, done bool) {
	switch m.state {
	case stateIdle:
		if b != Escape {
			return Other(b), true
		}
		m.state = stateEscape
	case stateEscape:
		switch b {
		case '[':
			m.state = stateCSI
		case 'O':
			m.state = stateSS3
		default:
			// Unknown introducer: the second tail byte is still consumed.
			m.state = stateDiscard
		}
	case stateCSI:
		switch {
		case b >= '0' && b <= '9':
			m.digit = b
			m.state = stateTilde
		case b == 'A':
			return Key{Kind: KindArrowUp}, true
		case b == 'B':
			return Key{Kind: KindArrowDown}, true
		case b == 'C':
			return Key{Kind: KindArrowRight}, true
		case b == 'D':
			return Key{Kind: KindArrowLeft}, true
		case b == 'F':
			return Key{Kind: KindEnd}, true
		case b == 'H':
			return Key{Kind: KindHome}, true
		default:
			return Other(Escape), true
		}
	case stateSS3:
		switch b {
		case 'F':
			return Key{Kind: KindEnd}, true
		case 'H':
			return Key{Kind: KindHome}, true
		default:
			return Other(Escape), true
		}
	case stateTilde:
		if b != '~' {
			return Other(Escape), true
		}
		return numericKey(m.digit), true
	case stateDiscard:
		return Other(Escape), true
	}
	return Key{}, false
}

// expire resolves a sequence whose next byte never arrived.
func (m *machine) expire() Key {
	return Other(Escape)
}

func numericKey(digit byte) Key {
	switch digit {
	case '1', '7':
		return Key{Kind: KindHome}
	case '3':
		return Key{Kind: KindDelete}
	case '4', '8':
		return Key{Kind: KindEnd}
	case '5':
		return Key{Kind: KindPageUp}
	case '6':
		return Key{Kind: KindPageDown}
	default:
		return Other(Escape)
	}
}

// Decoder reads key events from a raw-mode input stream. A read that returns
// no byte is treated as the terminal read timeout expiring.
type Decoder struct {
	r   io.Reader
	buf [1]byte
}

// NewDecoder returns a decoder over r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadKey blocks until a key is decoded, ctx is done or the input fails.
func (d *Decoder) ReadKey(ctx context.Context) (Key, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var m machine
	for {
		if err := ctx.Err(); err != nil {
			return Key{}, err
		}
		b, ok, err := d.readByte()
		if err != nil {
			return Key{}, err
		}
		if !ok {
			continue
		}
		if k, done := m.feed(b); done {
			return k, nil
		}
		break
	}
	for {
		b, ok, err := d.readByte()
		if err != nil {
			return Key{}, err
		}
		if !ok {
			return m.expire(), nil
		}
		if k, done := m.feed(b); done {
			return k, nil
		}
	}
}

func (d *Decoder) readByte() (byte, bool, error) {
	n, err := d.r.Read(d.buf[:])
	if n == 1 {
		return d.buf[0], true, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return 0, false, nil
	}
	return 0, false, err
}
