package types

import (
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &typePrinter{} },
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	p.sb.Reset()
	printerPool.Put(p)
}

type typePrinter struct {
	sb strings.Builder
}

// TypeString returns a string representation of a Type, using the declaration syntax.
// Named shapes are printed by name; anonymous shapes are printed with their fields.
func TypeString(t Type) string {
	p := newTypePrinter()
	typeString(p, t)
	s := p.sb.String()
	p.Release()
	return s
}

// ShapeString returns a string representation of a shape with its flattened fields and extra rule.
func ShapeString(s *Shape) string {
	p := newTypePrinter()
	p.sb.WriteString(s.Name)
	shapeBody(p, s)
	str := p.sb.String()
	p.Release()
	return str
}

// FieldString returns the declared (qualified) type of a field: `ReadOnly[NotRequired[int]]`
func FieldString(f *Field) string {
	p := newTypePrinter()
	fieldType(p, f, true)
	s := p.sb.String()
	p.Release()
	return s
}

func typeString(p *typePrinter, t Type) {
	switch t := t.(type) {
	case *Dynamic:
		p.sb.WriteString("Any")

	case *Top:
		p.sb.WriteString("object")

	case *Bottom:
		p.sb.WriteString("Never")

	case *Class:
		p.sb.WriteString(t.Name)

	case *Named:
		p.sb.WriteString(t.Name)

	case *Union:
		t.Members.Range(func(i int, m Type) bool {
			if i > 0 {
				p.sb.WriteString(" | ")
			}
			typeString(p, m)
			return true
		})

	case *App:
		p.sb.WriteString(t.Const.Name)
		if len(t.Params) == 0 {
			return
		}
		p.sb.WriteByte('[')
		for i, param := range t.Params {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, param)
		}
		p.sb.WriteByte(']')

	case *Arrow:
		p.sb.WriteString("Callable[[")
		for i, arg := range t.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, arg)
		}
		p.sb.WriteString("], ")
		typeString(p, t.Return)
		p.sb.WriteByte(']')

	case *Narrow:
		p.sb.WriteString(t.TypeName())
		p.sb.WriteByte('[')
		typeString(p, t.Target)
		p.sb.WriteByte(']')

	case *Mapping:
		p.sb.WriteString("Mapping[str, ")
		typeString(p, t.Value)
		p.sb.WriteByte(']')

	case *Dict:
		p.sb.WriteString("dict[str, ")
		typeString(p, t.Value)
		p.sb.WriteByte(']')

	case *Shape:
		if t.Name != "" {
			p.sb.WriteString(t.Name)
			return
		}
		shapeBody(p, t)

	case nil:
		p.sb.WriteString("<nil>")

	default:
		p.sb.WriteString("<" + t.TypeName() + ">")
	}
}

func shapeBody(p *typePrinter, s *Shape) {
	p.sb.WriteByte('{')
	i := 0
	s.fields.Range(func(f *Field) bool {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(f.Name)
		p.sb.WriteString(": ")
		fieldType(p, f, true)
		i++
		return true
	})
	// An absent extra rule is not printed.
	if extra := s.extra; extra.Declared {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		switch extra.Openness {
		case Closed:
			p.sb.WriteString("closed")
		case Open:
			p.sb.WriteString("open")
		case ExtraItems:
			p.sb.WriteString("extra_items: ")
			fieldType(p, extra.Pseudo(), false)
		}
	}
	p.sb.WriteByte('}')
}

func fieldType(p *typePrinter, f *Field, requiredness bool) {
	if f.ReadOnly {
		p.sb.WriteString("ReadOnly[")
	}
	if requiredness && !f.Required {
		p.sb.WriteString("NotRequired[")
	}
	typeString(p, f.Type)
	if requiredness && !f.Required {
		p.sb.WriteByte(']')
	}
	if f.ReadOnly {
		p.sb.WriteByte(']')
	}
}
