package classfile_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/schemagen/internal/adapters/classfile"
	"go.trai.ch/schemagen/internal/adapters/classfile/classfiletest"
)

func TestParseClass(t *testing.T) {
	data := classfiletest.Build(classfiletest.Class{
		Name:                 "com.example.Order$Line",
		Super:                "com.example.Base",
		Annotations:          []string{"jakarta.persistence.Entity", "jakarta.persistence.Table"},
		InvisibleAnnotations: []string{"com.example.Internal"},
	})

	info, err := classfile.ParseClass(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "com.example.Order$Line", info.Name)
	assert.Equal(t, "com.example.Base", info.SuperName)
	assert.Equal(t, uint16(61), info.MajorVersion)
	assert.Equal(t, []string{
		"jakarta.persistence.Entity",
		"jakarta.persistence.Table",
		"com.example.Internal",
	}, info.Annotations)
	assert.True(t, info.HasAnnotation("jakarta.persistence.Entity"))
	assert.False(t, info.HasAnnotation("javax.persistence.Entity"))
}

func TestParseClass_NoAnnotations(t *testing.T) {
	info, err := classfile.ParseClass(bytes.NewReader(classfiletest.Build(classfiletest.Class{Name: "Plain"})))
	require.NoError(t, err)
	assert.Equal(t, "Plain", info.Name)
	assert.Equal(t, "java.lang.Object", info.SuperName)
	assert.Empty(t, info.Annotations)
}

func TestParseClass_Invalid(t *testing.T) {
	valid := classfiletest.Build(classfiletest.Class{
		Name:        "com.example.Foo",
		Annotations: []string{"javax.persistence.Entity"},
	})

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "bad magic", data: []byte{0xDE, 0xAD, 0xBE, 0xEF, 0, 0, 0, 61}},
		{name: "truncated header", data: valid[:6]},
		{name: "truncated constant pool", data: valid[:20]},
		{name: "truncated attributes", data: valid[:len(valid)-3]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classfile.ParseClass(bytes.NewReader(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid class file")
		})
	}
}
