package polstack

import (
	"encoding"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

type textCodec interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}

// ElementType selects the retardance model of a plate.
type ElementType uint8

const (
	ElementA  ElementType = iota // in-plane optical axis (A-plate)
	ElementC                     // optical axis along the normal (C-plate)
	ElementLC                    // liquid-crystal layer, in-plane director
)

var elementTokens = [...]string{ElementA: "A", ElementC: "C", ElementLC: "LC"}

func (t ElementType) String() string {
	if int(t) < len(elementTokens) {
		return elementTokens[t]
	}
	return fmt.Sprintf("ElementType(%d)", uint8(t))
}

// InPlane reports whether the element uses the in-plane retardance formula.
func (t ElementType) InPlane() bool {
	switch t {
	case ElementA, ElementLC:
		return true
	case ElementC:
		return false
	}
	panic(fmt.Sprintf("polstack: invalid element type %d", uint8(t)))
}

// ParseElementType maps "A", "C" or "LC" (case-insensitive) to its type.
func ParseElementType(token string) (ElementType, error) {
	for i, s := range elementTokens {
		if strings.EqualFold(strings.TrimSpace(token), s) {
			return ElementType(i), nil
		}
	}
	return 0, configErr("element type", token, "must be one of A, C, LC")
}

func (t ElementType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *ElementType) UnmarshalText(b []byte) error {
	v, err := ParseElementType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Element is one uniaxial plate. Thickness is in meters. No and Ne are the
// reference (G) indices; Scale optionally overrides the dispersion table
// for this element only.
type Element struct {
	Type      ElementType   `json:"type"`
	Axis      r3.Vec        `json:"axis"`
	Thickness Real          `json:"d"`
	No        Real          `json:"no"`
	Ne        Real          `json:"ne"`
	Scale     PrimaryScales `json:"scale,omitempty"`
}

// Dn returns the reference birefringence ne − no.
func (e Element) Dn() Real { return e.Ne - e.No }

// Retardation returns d·(ne − no) in meters.
func (e Element) Retardation() Real { return e.Thickness * e.Dn() }

// NewInPlane builds an A or LC element with its axis at azimuthDeg.
func NewInPlane(t ElementType, azimuthDeg, d, no, dn Real) Element {
	if !t.InPlane() {
		panic("polstack: NewInPlane called with a C element")
	}
	return Element{Type: t, Axis: AxisFromAzimuth(azimuthDeg), Thickness: d, No: no, Ne: no + dn}
}

// NewAPlate builds an A-plate from its in-plane retardation (nm), choosing
// the thickness d = Re/|dn|. A zero retardation gives a zero-thickness plate.
func NewAPlate(reNm, azimuthDeg, no, dn Real) Element {
	d := 0.0
	if reNm != 0 && dn != 0 {
		d = math.Abs(reNm*nm2m) / math.Abs(dn)
	}
	return NewInPlane(ElementA, azimuthDeg, d, no, sign(reNm)*math.Abs(dn))
}

// NewCPlate builds a C-plate from a signed thickness retardation (nm):
// positive for a positive C-plate, negative for a negative one. ok is false
// for zero retardation, in which case no element should be stacked.
func NewCPlate(reNmSigned, no, dn Real) (el Element, ok bool) {
	if reNmSigned == 0 || dn == 0 {
		return Element{}, false
	}
	adn := math.Abs(dn)
	return Element{
		Type:      ElementC,
		Axis:      zHat,
		Thickness: math.Abs(reNmSigned*nm2m) / adn,
		No:        no,
		Ne:        no + sign(reNmSigned)*adn,
	}, true
}

// Stack is an ordered list of elements, applied first to last.
type Stack []Element

// Validate rejects non-physical thicknesses and indices.
func (s Stack) Validate() error {
	for i, el := range s {
		field := fmt.Sprintf("stack[%d]", i)
		if int(el.Type) >= len(elementTokens) {
			return configErr(field, el.Type.String(), "unknown element type")
		}
		if !isFinite(el.Thickness) || el.Thickness < 0 {
			return configErr(field, fmt.Sprint(el.Thickness), "thickness must be finite and >= 0")
		}
		if !isFinite(el.No) || !isFinite(el.Ne) || el.No <= 0 || el.Ne <= 0 {
			return configErr(field, fmt.Sprintf("no=%g ne=%g", el.No, el.Ne), "indices must be finite and > 0")
		}
	}
	return nil
}

// Rotated returns a copy of the stack whose selected elements (all when no
// index is given) have their in-plane axes rotated about the normal by
// deltaDeg. C-plates are left untouched.
func (s Stack) Rotated(deltaDeg Real, idx ...int) Stack {
	out := make(Stack, len(s))
	copy(out, s)
	pick := func(i int) bool {
		if len(idx) == 0 {
			return true
		}
		for _, j := range idx {
			if j == i {
				return true
			}
		}
		return false
	}
	for i := range out {
		if pick(i) && out[i].Type.InPlane() {
			out[i].Axis = RotateAboutNormal(out[i].Axis, deltaDeg)
		}
	}
	return out
}
