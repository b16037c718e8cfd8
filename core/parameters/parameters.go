/*
Package parameters holds the layout core's tunable registers: the
units-per-pixel ratio, the line-box length limit, border-width constants
and similar knobs that the value solver and inline formatting context
consult instead of hard-coded literals.

The grouped push/pop scheme is carried over from the teacher's
typesetting registers (TeX-style dynamic scoping): Begingroup/Endgroup
layer scopes over the base set. No package of this core opens a group,
so the layout run reads the base values.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"golang.org/x/text/unicode/bidi"

	"github.com/npillmayer/vizbox/core/dimen"
)

// Key identifies a single register.
type Key int

const (
	none Key = iota
	P_UNITSPERPIXEL
	P_MAXLINEBOXLENGTH
	P_TABSIZE
	P_BORDERTHIN
	P_BORDERMEDIUM
	P_BORDERTHICK
	P_TEXTDIRECTION
	P_LANGUAGE
	P_SCRIPT
	stopper
)

type group struct {
	params map[Key]interface{}
	level  int
	next   *group
}

// Registers holds the layout core's parameter set, with TeX-style
// dynamic-scope groups layered on top of a base set of defaults.
type Registers struct {
	base       [stopper]interface{}
	groups     *group
	grouplevel int
}

// NewRegisters returns a Registers value initialized to the core's
// defaults: 60 units per pixel, an effectively unbounded line-box length,
// an 8-space tab stop, 1/3/5px border-width constants, and left-to-right
// text direction.
func NewRegisters() *Registers {
	regs := &Registers{}
	initDefaults(&regs.base)
	return regs
}

func initDefaults(p *[stopper]interface{}) {
	p[P_UNITSPERPIXEL] = dimen.DefaultUnitsPerPixel
	p[P_MAXLINEBOXLENGTH] = dimen.Infinity
	p[P_TABSIZE] = 8
	p[P_BORDERTHIN] = dimen.Unit(1)
	p[P_BORDERMEDIUM] = dimen.Unit(3)
	p[P_BORDERTHICK] = dimen.Unit(5)
	p[P_TEXTDIRECTION] = bidi.LeftToRight
	p[P_LANGUAGE] = "en"
	p[P_SCRIPT] = "Latn"
}

// Begingroup opens a new dynamic scope; registers set after this call are
// forgotten on the matching Endgroup.
func (regs *Registers) Begingroup() {
	regs.grouplevel++
}

// Endgroup closes the most recently opened scope.
func (regs *Registers) Endgroup() {
	if regs.grouplevel > 0 {
		if regs.groups != nil && regs.groups.level == regs.grouplevel {
			regs.groups = regs.groups.next
		}
		regs.grouplevel--
	}
}

// Set assigns a register, local to the current group if one is open.
func (regs *Registers) Set(key Key, value interface{}) {
	if regs.grouplevel > 0 {
		var g *group
		if regs.groups == nil || regs.groups.level < regs.grouplevel {
			g = &group{params: make(map[Key]interface{}), level: regs.grouplevel, next: regs.groups}
			regs.groups = g
		} else {
			g = regs.groups
		}
		g.params[key] = value
		return
	}
	regs.base[key] = value
}

// Get reads a register, searching open groups innermost-first before
// falling back to the base value.
func (regs *Registers) Get(key Key) interface{} {
	if key <= none || key >= stopper {
		panic("parameters: key outside range of registers")
	}
	for g := regs.groups; g != nil; g = g.next {
		if v, ok := g.params[key]; ok {
			return v
		}
	}
	return regs.base[key]
}

// UnitsPerPixel is a typed accessor for P_UNITSPERPIXEL.
func (regs *Registers) UnitsPerPixel() dimen.Unit {
	return regs.Get(P_UNITSPERPIXEL).(dimen.Unit)
}

// MaxLineBoxLength is a typed accessor for P_MAXLINEBOXLENGTH.
func (regs *Registers) MaxLineBoxLength() dimen.Unit {
	return regs.Get(P_MAXLINEBOXLENGTH).(dimen.Unit)
}

// TabSize is a typed accessor for P_TABSIZE.
func (regs *Registers) TabSize() int {
	return regs.Get(P_TABSIZE).(int)
}

// BorderWidthConstant maps the `thin|medium|thick` border-width keywords
// to their fixed pixel width (the P_BORDER* registers, in pixels),
// returned in layout units, per spec.md §4.1's `border_width` operation.
func (regs *Registers) BorderWidthConstant(keyword string) dimen.Unit {
	switch keyword {
	case "thin":
		return regs.Get(P_BORDERTHIN).(dimen.Unit) * regs.UnitsPerPixel()
	case "medium":
		return regs.Get(P_BORDERMEDIUM).(dimen.Unit) * regs.UnitsPerPixel()
	case "thick":
		return regs.Get(P_BORDERTHICK).(dimen.Unit) * regs.UnitsPerPixel()
	}
	return 0
}
