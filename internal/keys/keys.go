// Package keys decodes raw terminal input bytes into logical key events.
package keys

import "fmt"

// Kind identifies a logical key.
type Kind int

const (
	KindOther Kind = iota
	KindArrowLeft
	KindArrowRight
	KindArrowUp
	KindArrowDown
	KindPageUp
	KindPageDown
	KindHome
	KindEnd
	KindDelete
)

var kindNames = map[Kind]string{
	KindOther:      "other",
	KindArrowLeft:  "left",
	KindArrowRight: "right",
	KindArrowUp:    "up",
	KindArrowDown:  "down",
	KindPageUp:     "pageup",
	KindPageDown:   "pagedown",
	KindHome:       "home",
	KindEnd:        "end",
	KindDelete:     "delete",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Escape is the byte that starts every terminal escape sequence.
const Escape = 0x1b

// Key is one decoded key event. Rune is only meaningful for KindOther and
// holds the raw input byte.
type Key struct {
	Kind Kind
	Rune rune
}

// Other wraps a plain input byte.
func Other(b byte) Key {
	return Key{Kind: KindOther, Rune: rune(b)}
}

// Ctrl returns the byte a terminal sends for Ctrl plus b.
func Ctrl(b byte) rune {
	return rune(b & 0x1f)
}

// Is reports whether k is the plain byte r.
func (k Key) Is(r rune) bool {
	return k.Kind == KindOther && k.Rune == r
}

func (k Key) String() string {
	if k.Kind != KindOther {
		return k.Kind.String()
	}
	if k.Rune < 0x20 || k.Rune == 0x7f {
		return fmt.Sprintf("0x%02x", k.Rune)
	}
	return string(k.Rune)
}
