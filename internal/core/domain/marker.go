package domain

// Marker is one of the persistence annotations that make a class a mapping contributor.
type Marker uint8

const (
	// MarkerEntity marks a mapped entity.
	MarkerEntity Marker = iota
	// MarkerMappedSuperclass marks a mapped superclass.
	MarkerMappedSuperclass
	// MarkerEmbeddable marks an embeddable value type.
	MarkerEmbeddable
)

// AllMarkers lists every marker the scanner looks for.
var AllMarkers = []Marker{MarkerEntity, MarkerMappedSuperclass, MarkerEmbeddable}

var markerNames = map[Marker][]string{
	MarkerEntity: {
		"javax.persistence.Entity",
		"jakarta.persistence.Entity",
	},
	MarkerMappedSuperclass: {
		"javax.persistence.MappedSuperclass",
		"jakarta.persistence.MappedSuperclass",
	},
	MarkerEmbeddable: {
		"javax.persistence.Embeddable",
		"jakarta.persistence.Embeddable",
	},
}

// AnnotationNames returns the fully-qualified annotation names matched by the marker.
func (m Marker) AnnotationNames() []string {
	return markerNames[m]
}

// String returns the simple annotation name of the marker.
func (m Marker) String() string {
	switch m {
	case MarkerEntity:
		return "Entity"
	case MarkerMappedSuperclass:
		return "MappedSuperclass"
	case MarkerEmbeddable:
		return "Embeddable"
	default:
		return "Unknown"
	}
}
