package domain

// UnitKind is the kind of a mapping unit.
type UnitKind string

const (
	// UnitAnnotatedClass is a class carrying a persistence marker.
	UnitAnnotatedClass UnitKind = "class"
	// UnitAnnotatedPackage is a package with compiled package-level metadata.
	UnitAnnotatedPackage UnitKind = "package"
	// UnitMappingFile is an explicitly configured mapping file.
	UnitMappingFile UnitKind = "file"
)

// MappingUnit is one contributor of persistence metadata handed to the schema engine.
type MappingUnit struct {
	Kind UnitKind `json:"kind"`
	// Name is the class name, package name or configured file name.
	Name string `json:"name"`
	// Path is the resolved filesystem path of a mapping file.
	Path string `json:"path,omitempty"`
}

// AnnotatedClass returns a class mapping unit.
func AnnotatedClass(name string) MappingUnit {
	return MappingUnit{Kind: UnitAnnotatedClass, Name: name}
}

// AnnotatedPackage returns a package mapping unit.
func AnnotatedPackage(name string) MappingUnit {
	return MappingUnit{Kind: UnitAnnotatedPackage, Name: name}
}

// MappingFile returns a mapping-file unit.
func MappingFile(name, path string) MappingUnit {
	return MappingUnit{Kind: UnitMappingFile, Name: name, Path: path}
}
