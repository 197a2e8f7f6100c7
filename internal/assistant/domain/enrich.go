package domain

import (
	"fmt"

	geo "geoas_backend/internal/geofence/domain"
)

// sectionLabels maps a protection level to the named section of the
// protected-areas reference that governs it.
var sectionLabels = map[geo.ProtectionLevel]string{
	geo.LevelLow:    "المناطق ذات الحماية المنخفضة",
	geo.LevelMedium: "المناطق ذات الحماية المتوسطة",
	geo.LevelHigh:   "المناطق ذات الحماية العالية",
}

// EnrichQuery prefixes the query with an instruction scoping the answer to
// the section named after the protection level. The scoping is advisory for
// the generation step, not an enforced retrieval filter. Absent or unknown
// levels return the query unchanged.
func EnrichQuery(query string, level *geo.ProtectionLevel) string {
	if level == nil {
		return query
	}
	label, ok := sectionLabels[*level]
	if !ok {
		return query
	}
	return fmt.Sprintf("أجب فقط بالاعتماد على قسم \"%s\" من المرجع.\n\nالسؤال: %s", label, query)
}
