package marshal

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/joshuapare/bytekit"
)

// Codec encodes and decodes flat structs by reflection. The wire layout
// is positional: exported fields in declaration order, no field names or
// tags on the wire. Integers travel as stop-bit varints, floats as raw
// little-endian words, strings as nullable UTF-8 records, byte slices as
// stop-bit length plus raw bytes, other slices as a stop-bit count plus
// elements, arrays as their elements alone (the length lives in the
// type), and nested structs as length16 frames. Pointers carry a presence
// byte. A field type implementing Marshallable encodes through its own
// methods, inside the same length16 envelope nested structs get.
//
// The walk plan for each struct type is built once and cached, so steady
// state cost is one map lookup plus the per-field writes.
type Codec struct {
	mu    sync.RWMutex
	plans map[reflect.Type]*typePlan
}

// NewCodec returns a Codec with an empty plan cache. A single Codec is
// safe for concurrent use.
func NewCodec() *Codec {
	return &Codec{plans: make(map[reflect.Type]*typePlan)}
}

type typePlan struct {
	fields []fieldPlan
}

type fieldPlan struct {
	index  int
	encode func(b *bytekit.Bytes, v reflect.Value) error
	decode func(b *bytekit.Bytes, v reflect.Value) error
}

// Encode writes v, which must be a struct or pointer to struct, at the
// write cursor.
func (c *Codec) Encode(b *bytekit.Bytes, v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ErrNotPointer
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
	plan, err := c.planFor(rv.Type())
	if err != nil {
		return err
	}
	return plan.encode(b, rv)
}

// Decode reads into v, which must be a non-nil pointer to a struct
// previously written by Encode with the same field layout.
func (c *Codec) Decode(b *bytekit.Bytes, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrNotPointer
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return ErrNotPointer
	}
	plan, err := c.planFor(rv.Type())
	if err != nil {
		return err
	}
	return plan.decode(b, rv)
}

func (c *Codec) planFor(t reflect.Type) (*typePlan, error) {
	c.mu.RLock()
	plan, ok := c.plans[t]
	c.mu.RUnlock()
	if ok {
		return plan, nil
	}

	plan = &typePlan{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		enc, dec, err := c.handlersFor(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t.Name(), f.Name, err)
		}
		plan.fields = append(plan.fields, fieldPlan{index: i, encode: enc, decode: dec})
	}

	c.mu.Lock()
	if cached, ok := c.plans[t]; ok {
		plan = cached
	} else {
		c.plans[t] = plan
	}
	c.mu.Unlock()
	return plan, nil
}

func (p *typePlan) encode(b *bytekit.Bytes, v reflect.Value) error {
	for _, f := range p.fields {
		if err := f.encode(b, v.Field(f.index)); err != nil {
			return err
		}
	}
	return nil
}

func (p *typePlan) decode(b *bytekit.Bytes, v reflect.Value) error {
	for _, f := range p.fields {
		if err := f.decode(b, v.Field(f.index)); err != nil {
			return err
		}
	}
	return nil
}

type encodeFunc func(b *bytekit.Bytes, v reflect.Value) error
type decodeFunc func(b *bytekit.Bytes, v reflect.Value) error

var marshallableType = reflect.TypeOf((*Marshallable)(nil)).Elem()

func (c *Codec) handlersFor(t reflect.Type) (encodeFunc, decodeFunc, error) {
	// A type that can marshal itself wins over the reflective walk, so
	// hand-written wire layouts survive embedding in codec structs.
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(marshallableType) {
		return marshallableHandlers(t)
	}

	switch t.Kind() {
	case reflect.Bool:
		return func(b *bytekit.Bytes, v reflect.Value) error {
				return b.WriteBool(v.Bool())
			}, func(b *bytekit.Bytes, v reflect.Value) error {
				x, err := b.ReadBool()
				if err != nil {
					return err
				}
				v.SetBool(x)
				return nil
			}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(b *bytekit.Bytes, v reflect.Value) error {
				return b.WriteStopBit(v.Int())
			}, func(b *bytekit.Bytes, v reflect.Value) error {
				x, err := b.ReadStopBit()
				if err != nil {
					return err
				}
				v.SetInt(x)
				return nil
			}, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(b *bytekit.Bytes, v reflect.Value) error {
				return b.WriteStopBit(int64(v.Uint()))
			}, func(b *bytekit.Bytes, v reflect.Value) error {
				x, err := b.ReadStopBit()
				if err != nil {
					return err
				}
				v.SetUint(uint64(x))
				return nil
			}, nil

	case reflect.Float32:
		return func(b *bytekit.Bytes, v reflect.Value) error {
				return b.WriteF32(float32(v.Float()))
			}, func(b *bytekit.Bytes, v reflect.Value) error {
				x, err := b.ReadF32()
				if err != nil {
					return err
				}
				v.SetFloat(float64(x))
				return nil
			}, nil

	case reflect.Float64:
		return func(b *bytekit.Bytes, v reflect.Value) error {
				return b.WriteF64(v.Float())
			}, func(b *bytekit.Bytes, v reflect.Value) error {
				x, err := b.ReadF64()
				if err != nil {
					return err
				}
				v.SetFloat(x)
				return nil
			}, nil

	case reflect.String:
		return func(b *bytekit.Bytes, v reflect.Value) error {
				s := v.String()
				return b.WriteUTF8Nullable(&s)
			}, func(b *bytekit.Bytes, v reflect.Value) error {
				s, err := b.ReadUTF8()
				if err != nil {
					return err
				}
				v.SetString(s)
				return nil
			}, nil

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return encodeByteSlice, decodeByteSlice, nil
		}
		elemEnc, elemDec, err := c.handlersFor(t.Elem())
		if err != nil {
			return nil, nil, err
		}
		return c.sliceHandlers(t, elemEnc, elemDec)

	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return encodeByteArray, decodeByteArray, nil
		}
		elemEnc, elemDec, err := c.handlersFor(t.Elem())
		if err != nil {
			return nil, nil, err
		}
		return arrayHandlers(elemEnc, elemDec)

	case reflect.Struct:
		return c.structHandlers(t)

	case reflect.Pointer:
		elemEnc, elemDec, err := c.handlersFor(t.Elem())
		if err != nil {
			return nil, nil, err
		}
		return c.pointerHandlers(t, elemEnc, elemDec)
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

func encodeByteSlice(b *bytekit.Bytes, v reflect.Value) error {
	data := v.Bytes()
	if err := b.WriteStopBit(int64(len(data))); err != nil {
		return err
	}
	return b.WriteSlice(data)
}

func decodeByteSlice(b *bytekit.Bytes, v reflect.Value) error {
	n, err := b.ReadStopBit()
	if err != nil {
		return err
	}
	if n < 0 || n > b.ReadRemaining() {
		return bytekit.ErrBufferUnderflow
	}
	// nil and empty are the same on the wire
	if n == 0 {
		v.SetBytes(nil)
		return nil
	}
	data, err := b.ReadBytes(n)
	if err != nil {
		return err
	}
	v.SetBytes(data)
	return nil
}

// Arrays have their length in the type, so no count travels on the wire.

func encodeByteArray(b *bytekit.Bytes, v reflect.Value) error {
	data := make([]byte, v.Len())
	reflect.Copy(reflect.ValueOf(data), v)
	return b.WriteSlice(data)
}

func decodeByteArray(b *bytekit.Bytes, v reflect.Value) error {
	data, err := b.ReadBytes(int64(v.Len()))
	if err != nil {
		return err
	}
	reflect.Copy(v, reflect.ValueOf(data))
	return nil
}

func arrayHandlers(elemEnc encodeFunc, elemDec decodeFunc) (encodeFunc, decodeFunc, error) {
	enc := func(b *bytekit.Bytes, v reflect.Value) error {
		for i := 0; i < v.Len(); i++ {
			if err := elemEnc(b, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	dec := func(b *bytekit.Bytes, v reflect.Value) error {
		for i := 0; i < v.Len(); i++ {
			if err := elemDec(b, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	return enc, dec, nil
}

// marshallableHandlers frames a self-marshalling field as length16, the
// same envelope nested structs get, so the two are interchangeable on
// the wire.
func marshallableHandlers(t reflect.Type) (encodeFunc, decodeFunc, error) {
	enc := func(b *bytekit.Bytes, v reflect.Value) error {
		if !v.CanAddr() {
			// Struct values reached without a pointer are not
			// addressable; marshal a copy.
			tmp := reflect.New(t)
			tmp.Elem().Set(v)
			v = tmp.Elem()
		}
		return WriteLength16(b, v.Addr().Interface().(Marshallable))
	}
	dec := func(b *bytekit.Bytes, v reflect.Value) error {
		return ReadLength16(b, v.Addr().Interface().(Marshallable))
	}
	return enc, dec, nil
}

func (c *Codec) sliceHandlers(t reflect.Type, elemEnc encodeFunc, elemDec decodeFunc) (encodeFunc, decodeFunc, error) {
	enc := func(b *bytekit.Bytes, v reflect.Value) error {
		n := v.Len()
		if err := b.WriteStopBit(int64(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := elemEnc(b, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	dec := func(b *bytekit.Bytes, v reflect.Value) error {
		n, err := b.ReadStopBit()
		if err != nil {
			return err
		}
		if n < 0 || n > b.ReadRemaining() {
			return bytekit.ErrBufferUnderflow
		}
		if n == 0 {
			v.Set(reflect.Zero(t))
			return nil
		}
		out := reflect.MakeSlice(t, int(n), int(n))
		for i := 0; i < int(n); i++ {
			if err := elemDec(b, out.Index(i)); err != nil {
				return err
			}
		}
		v.Set(out)
		return nil
	}
	return enc, dec, nil
}

func (c *Codec) structHandlers(t reflect.Type) (encodeFunc, decodeFunc, error) {
	// The nested plan is resolved lazily so self-referential types
	// (via pointers) do not recurse while the outer plan is being built.
	enc := func(b *bytekit.Bytes, v reflect.Value) error {
		plan, err := c.planFor(t)
		if err != nil {
			return err
		}
		return WriteLength16(b, &planRecord{plan: plan, v: v})
	}
	dec := func(b *bytekit.Bytes, v reflect.Value) error {
		plan, err := c.planFor(t)
		if err != nil {
			return err
		}
		return ReadLength16(b, &planRecord{plan: plan, v: v})
	}
	return enc, dec, nil
}

// planRecord adapts a reflected struct value to the Marshallable framing
// helpers.
type planRecord struct {
	plan *typePlan
	v    reflect.Value
}

func (r *planRecord) WriteMarshallable(b *bytekit.Bytes) error { return r.plan.encode(b, r.v) }
func (r *planRecord) ReadMarshallable(b *bytekit.Bytes) error  { return r.plan.decode(b, r.v) }

func (c *Codec) pointerHandlers(t reflect.Type, elemEnc encodeFunc, elemDec decodeFunc) (encodeFunc, decodeFunc, error) {
	enc := func(b *bytekit.Bytes, v reflect.Value) error {
		if v.IsNil() {
			return b.WriteBool(false)
		}
		if err := b.WriteBool(true); err != nil {
			return err
		}
		return elemEnc(b, v.Elem())
	}
	dec := func(b *bytekit.Bytes, v reflect.Value) error {
		present, err := b.ReadBool()
		if err != nil {
			return err
		}
		if !present {
			v.Set(reflect.Zero(t))
			return nil
		}
		out := reflect.New(t.Elem())
		if err := elemDec(b, out.Elem()); err != nil {
			return err
		}
		v.Set(out)
		return nil
	}
	return enc, dec, nil
}
