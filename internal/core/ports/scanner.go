package ports

import (
	"context"

	"go.trai.ch/schemagen/internal/core/domain"
)

// AnnotationScanner finds classes carrying persistence markers without loading them.
//
//go:generate go run go.uber.org/mock/mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type AnnotationScanner interface {
	// Scan returns the sorted, de-duplicated names of classes in roots annotated with any of markers.
	Scan(ctx context.Context, roots []domain.ClasspathRoot, markers []domain.Marker) ([]string, error)
}
