package ports

// FileLocator resolves explicitly configured file references.
//
//go:generate go run go.uber.org/mock/mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type FileLocator interface {
	// Locate tries name as a path relative to baseDir, then inside each search directory in order.
	// It returns the absolute path of the first regular file found.
	Locate(name, baseDir string, searchDirs []string) (string, error)
}
