// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl parses pin lists and connection strings.
//
// A pin list is a comma separated list of pin names where buses are declared
// with their size:
//
//	a, b, bus[4]
//
// expands to a, b, bus[0], bus[1], bus[2], bus[3].
//
// A connection string is a comma separated list of pin=wire assignments where
// either side can address a single bus pin or a range of bus pins:
//
//	a=x, b[0..1]=y[2..3], out=z
//
package hdl

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/pkg/errors"
)

// BusPinName returns the name of the i-th pin of a bus.
//
func BusPinName(bus string, i int) string {
	return bus + "[" + strconv.Itoa(i) + "]"
}

// A Connection connects a component pin to a named wire.
//
type Connection struct {
	Pin  string
	Wire string
}

type parser struct {
	s   scanner.Scanner
	in  string
	tok rune
	err error
}

func newParser(in string) *parser {
	p := &parser{in: in}
	p.s.Init(strings.NewReader(in))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = p.errorf(s.Position.Offset, "%s", msg)
		}
	}
	p.next()
	return p
}

func (p *parser) next() { p.tok = p.s.Scan() }

func (p *parser) pos() int { return p.s.Position.Offset }

func (p *parser) errorf(pos int, format string, args ...interface{}) error {
	return errors.Errorf("in %q at pos %d: %s", p.in, pos+1, fmt.Sprintf(format, args...))
}

func (p *parser) int() (int, error) {
	if p.tok != scanner.Int {
		return 0, p.errorf(p.pos(), "expected integer")
	}
	n, err := strconv.Atoi(p.s.TokenText())
	if err != nil {
		return 0, p.errorf(p.pos(), "%v", err)
	}
	p.next()
	return n, nil
}

func (p *parser) expect(r rune, what string) error {
	if p.tok != r {
		return p.errorf(p.pos(), "expected %s", what)
	}
	p.next()
	return nil
}

// ParseIO parses a pin list and returns individual pin names, bus
// declarations being expanded to individual pins.
//
//	ParseIO("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
func ParseIO(list string) ([]string, error) {
	var out []string
	p := newParser(list)
	if p.tok == scanner.EOF {
		return nil, p.err
	}
	for {
		if p.tok != scanner.Ident {
			return nil, p.errorf(p.pos(), "expected pin name")
		}
		name := p.s.TokenText()
		p.next()
		if p.tok == '[' {
			p.next()
			n, err := p.int()
			if err != nil {
				return nil, err
			}
			if n <= 0 {
				return nil, p.errorf(p.pos(), "invalid bus size %d", n)
			}
			if err = p.expect(']', "close bracket"); err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				out = append(out, BusPinName(name, i))
			}
		} else {
			out = append(out, name)
		}
		switch p.tok {
		case scanner.EOF:
			return out, p.err
		case ',':
			p.next()
		default:
			return nil, p.errorf(p.pos(), "expected comma or end of input")
		}
	}
}

// pins parses a pin reference (name, name[i] or name[i..j]) and returns the
// expanded pin names.
//
func (p *parser) pins() ([]string, error) {
	if p.tok != scanner.Ident {
		return nil, p.errorf(p.pos(), "expected pin name")
	}
	name := p.s.TokenText()
	p.next()
	if p.tok != '[' {
		return []string{name}, nil
	}
	p.next()
	start, err := p.int()
	if err != nil {
		return nil, err
	}
	end := start
	if p.tok == '.' {
		p.next()
		if err = p.expect('.', "range operator"); err != nil {
			return nil, err
		}
		if end, err = p.int(); err != nil {
			return nil, err
		}
	}
	if err = p.expect(']', "close bracket"); err != nil {
		return nil, err
	}
	if end < start {
		return nil, errors.Errorf("invalid bus range %s[%d..%d]", name, start, end)
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, BusPinName(name, i))
	}
	return r, nil
}

// ParseConnections parses a connection string. Ranges are expanded pin by pin
// if both sides have the same size; a single pin on either side is connected
// to every pin of the other.
//
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection
	p := newParser(c)
	if p.tok == scanner.EOF {
		return nil, p.err
	}
	for {
		ks, err := p.pins()
		if err != nil {
			return nil, err
		}
		if err = p.expect('=', "'='"); err != nil {
			return nil, err
		}
		vs, err := p.pins()
		if err != nil {
			return nil, err
		}
		switch {
		case len(ks) == len(vs):
			for i := range ks {
				conns = append(conns, Connection{ks[i], vs[i]})
			}
		case len(ks) == 1:
			for _, v := range vs {
				conns = append(conns, Connection{ks[0], v})
			}
		case len(vs) == 1:
			for _, k := range ks {
				conns = append(conns, Connection{k, vs[0]})
			}
		default:
			return nil, errors.Errorf("pin count mismatch in connection %s=%s", rangeName(ks), rangeName(vs))
		}
		switch p.tok {
		case scanner.EOF:
			return conns, p.err
		case ',':
			p.next()
		default:
			return nil, p.errorf(p.pos(), "expected comma or end of input")
		}
	}
}

func rangeName(pins []string) string {
	if len(pins) == 1 {
		return pins[0]
	}
	return pins[0] + ".." + pins[len(pins)-1]
}
