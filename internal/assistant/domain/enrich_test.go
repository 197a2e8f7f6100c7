package domain

import (
	"strings"
	"testing"

	geo "geoas_backend/internal/geofence/domain"
)

func TestEnrichQueryScopesToSection(t *testing.T) {
	cases := []struct {
		level geo.ProtectionLevel
		label string
	}{
		{geo.LevelLow, "المناطق ذات الحماية المنخفضة"},
		{geo.LevelMedium, "المناطق ذات الحماية المتوسطة"},
		{geo.LevelHigh, "المناطق ذات الحماية العالية"},
	}

	for _, tc := range cases {
		t.Run(string(tc.level), func(t *testing.T) {
			got := EnrichQuery("هل مسموح التخييم؟", &tc.level)
			if !strings.Contains(got, tc.label) {
				t.Errorf("enriched query missing section label %q: %q", tc.label, got)
			}
			if !strings.HasSuffix(got, "السؤال: هل مسموح التخييم؟") {
				t.Errorf("enriched query does not end with the original question: %q", got)
			}
		})
	}
}

func TestEnrichQueryNoOp(t *testing.T) {
	queries := []string{"", "هل مسموح الصيد؟", "plain english question"}
	unknown := geo.LevelUnknown

	for _, q := range queries {
		if got := EnrichQuery(q, nil); got != q {
			t.Errorf("EnrichQuery(%q, nil) = %q, want unchanged", q, got)
		}
		if got := EnrichQuery(q, &unknown); got != q {
			t.Errorf("EnrichQuery(%q, unknown) = %q, want unchanged", q, got)
		}
	}
}
