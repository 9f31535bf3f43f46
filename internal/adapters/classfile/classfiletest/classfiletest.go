// Package classfiletest builds minimal class files for tests.
package classfiletest

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// Class describes a class file to generate. Names are dotted.
type Class struct {
	Name  string
	Super string
	// Annotations are emitted as RuntimeVisibleAnnotations.
	Annotations []string
	// InvisibleAnnotations are emitted as RuntimeInvisibleAnnotations.
	InvisibleAnnotations []string
	// Salt adds a distinct string constant, changing the bytes without changing the metadata.
	Salt string
}

type builder struct {
	pool  bytes.Buffer
	count uint16
	utf8s map[string]uint16
}

func (b *builder) u2(buf *bytes.Buffer, v uint16) {
	_ = binary.Write(buf, binary.BigEndian, v)
}

func (b *builder) u4(buf *bytes.Buffer, v uint32) {
	_ = binary.Write(buf, binary.BigEndian, v)
}

func (b *builder) utf8(s string) uint16 {
	if idx, ok := b.utf8s[s]; ok {
		return idx
	}
	b.pool.WriteByte(1)
	b.u2(&b.pool, uint16(len(s)))
	b.pool.WriteString(s)
	idx := b.count
	b.count++
	b.utf8s[s] = idx
	return idx
}

func (b *builder) class(name string) uint16 {
	nameIdx := b.utf8(internal(name))
	b.pool.WriteByte(7)
	b.u2(&b.pool, nameIdx)
	idx := b.count
	b.count++
	return idx
}

func (b *builder) long(v uint64) {
	b.pool.WriteByte(5)
	_ = binary.Write(&b.pool, binary.BigEndian, v)
	b.count += 2
}

// Build returns the bytes of a class file describing c.
// Every annotation carries element values of several kinds so readers must skip them correctly.
func Build(c Class) []byte {
	b := &builder{count: 1, utf8s: make(map[string]uint16)}

	super := c.Super
	if super == "" {
		super = "java.lang.Object"
	}
	thisIdx := b.class(c.Name)
	superIdx := b.class(super)
	b.long(42)
	if c.Salt != "" {
		b.utf8(c.Salt)
	}
	fieldName := b.utf8("id")
	fieldDesc := b.utf8("J")
	constValue := b.utf8("ConstantValue")
	valueName := b.utf8("value")
	valueStr := b.utf8("table_name")
	enumType := b.utf8("Ljakarta/persistence/AccessType;")
	enumConst := b.utf8("FIELD")
	nestedType := b.utf8("Ljakarta/persistence/Index;")

	visible := annotationAttr(b, "RuntimeVisibleAnnotations", c.Annotations, valueName, valueStr, enumType, enumConst, nestedType)
	invisible := annotationAttr(b, "RuntimeInvisibleAnnotations", c.InvisibleAnnotations, valueName, valueStr, enumType, enumConst, nestedType)

	var out bytes.Buffer
	b.u4(&out, 0xCAFEBABE)
	b.u2(&out, 0)
	b.u2(&out, 61)
	b.u2(&out, b.count)
	out.Write(b.pool.Bytes())

	b.u2(&out, 0x0021) // public super
	b.u2(&out, thisIdx)
	b.u2(&out, superIdx)
	b.u2(&out, 0) // interfaces

	// one field with a ConstantValue attribute
	b.u2(&out, 1)
	b.u2(&out, 0x0002)
	b.u2(&out, fieldName)
	b.u2(&out, fieldDesc)
	b.u2(&out, 1)
	b.u2(&out, constValue)
	b.u4(&out, 2)
	b.u2(&out, 3)

	b.u2(&out, 0) // methods

	var attrs [][]byte
	if visible != nil {
		attrs = append(attrs, visible)
	}
	if invisible != nil {
		attrs = append(attrs, invisible)
	}
	b.u2(&out, uint16(len(attrs)))
	for _, a := range attrs {
		out.Write(a)
	}
	return out.Bytes()
}

func annotationAttr(b *builder, attrName string, names []string, valueName, valueStr, enumType, enumConst, nestedType uint16) []byte {
	if len(names) == 0 {
		return nil
	}
	nameIdx := b.utf8(attrName)
	types := make([]uint16, len(names))
	for i, n := range names {
		types[i] = b.utf8("L" + internal(n) + ";")
	}

	var body bytes.Buffer
	b.u2(&body, uint16(len(names)))
	for _, t := range types {
		b.u2(&body, t)
		b.u2(&body, 3) // element-value pairs
		// value = "table_name"
		b.u2(&body, valueName)
		body.WriteByte('s')
		b.u2(&body, valueStr)
		// value = AccessType.FIELD
		b.u2(&body, valueName)
		body.WriteByte('e')
		b.u2(&body, enumType)
		b.u2(&body, enumConst)
		// value = { @Index(value = "table_name") }
		b.u2(&body, valueName)
		body.WriteByte('[')
		b.u2(&body, 1)
		body.WriteByte('@')
		b.u2(&body, nestedType)
		b.u2(&body, 1)
		b.u2(&body, valueName)
		body.WriteByte('s')
		b.u2(&body, valueStr)
	}

	var attr bytes.Buffer
	b.u2(&attr, nameIdx)
	b.u4(&attr, uint32(body.Len()))
	attr.Write(body.Bytes())
	return attr.Bytes()
}

func internal(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
