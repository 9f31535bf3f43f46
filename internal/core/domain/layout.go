package domain

import (
	"path/filepath"
	"strings"
)

const (
	// StateDirName is the name of the generator state directory inside the build directory.
	StateDirName = ".schemagen"

	// LedgerSuffix is appended to the script name to form the ledger file name.
	LedgerSuffix = ".ledger.json"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "schemagen.yaml"

	// EnvFileName is the name of the optional dotenv file next to the configuration.
	EnvFileName = ".env"

	// DefaultPropertiesResource is looked up on the classpath when no properties file is configured.
	DefaultPropertiesResource = "hibernate.properties"

	// PackageInfoClass is the simple name of compiled package-level metadata.
	PackageInfoClass = "package-info"

	// ModuleInfoClass is the simple name of a compiled module descriptor.
	ModuleInfoClass = "module-info"

	// ClassSuffix is the extension of compiled classes.
	ClassSuffix = ".class"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStatePath returns the generator state directory for a build directory.
func DefaultStatePath(buildDir string) string {
	return filepath.Join(buildDir, StateDirName)
}

// DefaultLedgerPath returns the ledger location for a script generated into buildDir.
// Each script keeps its own ledger so that goals writing different scripts never share state.
func DefaultLedgerPath(buildDir, script string) string {
	return filepath.Join(DefaultStatePath(buildDir), filepath.Base(script)+LedgerSuffix)
}

// ClassResourceName converts a fully-qualified class name to its class-file resource path.
func ClassResourceName(className string) string {
	return strings.ReplaceAll(className, ".", "/") + ClassSuffix
}

// PackageInfoResourceName returns the resource path of the package-level metadata class.
func PackageInfoResourceName(packageName string) string {
	return strings.ReplaceAll(packageName, ".", "/") + "/" + PackageInfoClass + ClassSuffix
}

// ParentPackage returns the enclosing package of a class or package name.
// The second result is false for names in the default package.
func ParentPackage(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", false
	}
	return name[:i], true
}
