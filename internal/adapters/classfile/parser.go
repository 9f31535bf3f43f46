// Package classfile reads JVM class-file metadata and indexes persistence annotations.
package classfile

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"

	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/zerr"
)

const classMagic = 0xCAFEBABE

// Constant pool tags.
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

const (
	attrVisibleAnnotations   = "RuntimeVisibleAnnotations"
	attrInvisibleAnnotations = "RuntimeInvisibleAnnotations"
)

// ClassInfo is the subset of a class file needed to classify it.
type ClassInfo struct {
	Name         string
	SuperName    string
	Interfaces   []string
	AccessFlags  uint16
	MajorVersion uint16
	// Annotations holds the class-level annotation types as dotted names, in declaration order.
	Annotations []string
}

// HasAnnotation reports whether the class carries the annotation.
func (c *ClassInfo) HasAnnotation(name string) bool {
	for _, a := range c.Annotations {
		if a == name {
			return true
		}
	}
	return false
}

// constant is a constant pool slot. Only the parts needed for name resolution are kept.
type constant struct {
	tag   uint8
	utf8  string
	index uint16
}

type parser struct {
	r    *bufio.Reader
	pool []constant
}

// ParseClass reads a class file from r. Method bodies and field data are skipped, never interpreted.
func ParseClass(r io.Reader) (*ClassInfo, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	p := &parser{r: br}

	info, err := p.parse()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrInvalidClassFile.Error())
	}
	return info, nil
}

func (p *parser) parse() (*ClassInfo, error) {
	magic, err := p.u4()
	if err != nil {
		return nil, err
	}
	if magic != classMagic {
		return nil, zerr.With(zerr.New("bad magic number"), "magic", magic)
	}

	info := &ClassInfo{}
	if _, err := p.u2(); err != nil { // minor
		return nil, err
	}
	if info.MajorVersion, err = p.u2(); err != nil {
		return nil, err
	}

	if err := p.readConstantPool(); err != nil {
		return nil, err
	}

	if info.AccessFlags, err = p.u2(); err != nil {
		return nil, err
	}
	if info.Name, err = p.classRef(); err != nil {
		return nil, err
	}
	if info.SuperName, err = p.classRef(); err != nil {
		return nil, err
	}

	count, err := p.u2()
	if err != nil {
		return nil, err
	}
	for range count {
		name, err := p.classRef()
		if err != nil {
			return nil, err
		}
		info.Interfaces = append(info.Interfaces, name)
	}

	// fields, then methods
	for range 2 {
		if err := p.skipMembers(); err != nil {
			return nil, err
		}
	}

	attrs, err := p.u2()
	if err != nil {
		return nil, err
	}
	for range attrs {
		name, data, err := p.attribute()
		if err != nil {
			return nil, err
		}
		if name != attrVisibleAnnotations && name != attrInvisibleAnnotations {
			continue
		}
		if err := p.collectAnnotations(data, info); err != nil {
			return nil, err
		}
	}

	return info, nil
}

func (p *parser) readConstantPool() error {
	count, err := p.u2()
	if err != nil {
		return err
	}
	if count == 0 {
		return zerr.New("empty constant pool")
	}
	p.pool = make([]constant, count)

	for i := 1; i < int(count); i++ {
		tag, err := p.u1()
		if err != nil {
			return err
		}
		c := constant{tag: tag}

		switch tag {
		case tagUtf8:
			n, err := p.u2()
			if err != nil {
				return err
			}
			buf := make([]byte, n)
			if _, err := io.ReadFull(p.r, buf); err != nil {
				return zerr.Wrap(err, "truncated constant pool")
			}
			c.utf8 = string(buf)
		case tagClass, tagString, tagMethodType, tagModule, tagPackage:
			if c.index, err = p.u2(); err != nil {
				return err
			}
		case tagInteger, tagFloat, tagFieldref, tagMethodref, tagInterfaceMethodref,
			tagNameAndType, tagDynamic, tagInvokeDynamic:
			if err := p.skip(4); err != nil {
				return err
			}
		case tagLong, tagDouble:
			if err := p.skip(8); err != nil {
				return err
			}
			// 8-byte constants take two slots.
			p.pool[i] = c
			i++
			continue
		case tagMethodHandle:
			if err := p.skip(3); err != nil {
				return err
			}
		default:
			return zerr.With(zerr.New("unknown constant pool tag"), "tag", tag)
		}

		p.pool[i] = c
	}
	return nil
}

// classRef resolves a CONSTANT_Class index to a dotted name. Index 0 yields "".
func (p *parser) classRef() (string, error) {
	idx, err := p.u2()
	if err != nil {
		return "", err
	}
	if idx == 0 {
		return "", nil
	}
	c, err := p.constantAt(idx, tagClass)
	if err != nil {
		return "", err
	}
	name, err := p.utf8At(c.index)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(name, "/", "."), nil
}

func (p *parser) constantAt(idx uint16, tag uint8) (constant, error) {
	if int(idx) >= len(p.pool) || idx == 0 {
		return constant{}, zerr.With(zerr.New("constant pool index out of range"), "index", idx)
	}
	c := p.pool[idx]
	if c.tag != tag {
		err := zerr.With(zerr.New("unexpected constant pool entry"), "index", idx)
		return constant{}, zerr.With(err, "tag", c.tag)
	}
	return c, nil
}

func (p *parser) utf8At(idx uint16) (string, error) {
	c, err := p.constantAt(idx, tagUtf8)
	if err != nil {
		return "", err
	}
	return c.utf8, nil
}

func (p *parser) skipMembers() error {
	count, err := p.u2()
	if err != nil {
		return err
	}
	for range count {
		// access_flags, name_index, descriptor_index
		if err := p.skip(6); err != nil {
			return err
		}
		attrs, err := p.u2()
		if err != nil {
			return err
		}
		for range attrs {
			if err := p.skipAttribute(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *parser) skipAttribute() error {
	if err := p.skip(2); err != nil {
		return err
	}
	length, err := p.u4()
	if err != nil {
		return err
	}
	return p.skip(int64(length))
}

// attribute reads a class-level attribute. Only annotation attributes are buffered.
func (p *parser) attribute() (string, []byte, error) {
	nameIdx, err := p.u2()
	if err != nil {
		return "", nil, err
	}
	length, err := p.u4()
	if err != nil {
		return "", nil, err
	}
	name, err := p.utf8At(nameIdx)
	if err != nil {
		return "", nil, err
	}
	if name != attrVisibleAnnotations && name != attrInvisibleAnnotations {
		return name, nil, p.skip(int64(length))
	}

	data := make([]byte, 0, min(int(length), 1<<16))
	buf := bytes.NewBuffer(data)
	if _, err := io.CopyN(buf, p.r, int64(length)); err != nil {
		return "", nil, zerr.Wrap(err, "truncated attribute")
	}
	return name, buf.Bytes(), nil
}

func (p *parser) collectAnnotations(data []byte, info *ClassInfo) error {
	ar := &annotationReader{data: data}
	count, err := ar.u2()
	if err != nil {
		return err
	}
	for range count {
		typeIdx, err := ar.annotation()
		if err != nil {
			return err
		}
		desc, err := p.utf8At(typeIdx)
		if err != nil {
			return err
		}
		name := descriptorToName(desc)
		if !info.HasAnnotation(name) {
			info.Annotations = append(info.Annotations, name)
		}
	}
	return nil
}

// descriptorToName converts a field descriptor such as "Ljakarta/persistence/Entity;" to a dotted name.
func descriptorToName(desc string) string {
	desc = strings.TrimPrefix(desc, "L")
	desc = strings.TrimSuffix(desc, ";")
	return strings.ReplaceAll(desc, "/", ".")
}

func (p *parser) u1() (uint8, error) {
	b, err := p.r.ReadByte()
	if err != nil {
		return 0, truncated(err)
	}
	return b, nil
}

func (p *parser) u2() (uint16, error) {
	var v uint16
	if err := binary.Read(p.r, binary.BigEndian, &v); err != nil {
		return 0, truncated(err)
	}
	return v, nil
}

func (p *parser) u4() (uint32, error) {
	var v uint32
	if err := binary.Read(p.r, binary.BigEndian, &v); err != nil {
		return 0, truncated(err)
	}
	return v, nil
}

func (p *parser) skip(n int64) error {
	if _, err := io.CopyN(io.Discard, p.r, n); err != nil {
		return truncated(err)
	}
	return nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return zerr.Wrap(err, "truncated class file")
}

// annotationReader walks an in-memory annotation attribute.
type annotationReader struct {
	data []byte
	pos  int
}

func (a *annotationReader) need(n int) error {
	if a.pos+n > len(a.data) {
		return zerr.New("truncated annotation")
	}
	return nil
}

func (a *annotationReader) u1() (uint8, error) {
	if err := a.need(1); err != nil {
		return 0, err
	}
	v := a.data[a.pos]
	a.pos++
	return v, nil
}

func (a *annotationReader) u2() (uint16, error) {
	if err := a.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(a.data[a.pos:])
	a.pos += 2
	return v, nil
}

// annotation reads one annotation structure and returns its type index.
func (a *annotationReader) annotation() (uint16, error) {
	typeIdx, err := a.u2()
	if err != nil {
		return 0, err
	}
	pairs, err := a.u2()
	if err != nil {
		return 0, err
	}
	for range pairs {
		if _, err := a.u2(); err != nil { // element_name_index
			return 0, err
		}
		if err := a.elementValue(); err != nil {
			return 0, err
		}
	}
	return typeIdx, nil
}

func (a *annotationReader) elementValue() error {
	tag, err := a.u1()
	if err != nil {
		return err
	}
	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's', 'c':
		_, err = a.u2()
		return err
	case 'e':
		if _, err := a.u2(); err != nil {
			return err
		}
		_, err = a.u2()
		return err
	case '@':
		_, err = a.annotation()
		return err
	case '[':
		n, err := a.u2()
		if err != nil {
			return err
		}
		for range n {
			if err := a.elementValue(); err != nil {
				return err
			}
		}
		return nil
	default:
		return zerr.With(zerr.New("unknown element value tag"), "tag", string(rune(tag)))
	}
}
