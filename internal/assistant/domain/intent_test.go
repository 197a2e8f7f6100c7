package domain

import "testing"

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  Intent
	}{
		{"arabic allowed", "هل مسموح التخييم هنا؟", IntentPermission},
		{"arabic forbidden", "هل ممنوع إشعال النار؟", IntentPermission},
		{"arabic may i", "هل يجوز لي الصيد في هذه المنطقة", IntentPermission},
		{"arabic can i", "هل يمكنني قطف النباتات", IntentPermission},
		{"arabic entitled", "هل يحق لي دخول المحمية ليلاً", IntentPermission},
		{"bare allowed", "التخييم مسموح في الصيف", IntentPermission},
		{"english allowed", "Is it allowed to camp here?", IntentPermission},
		{"english uppercase", "MAY I light a fire?", IntentPermission},
		{"english can i", "Can I bring my dog?", IntentPermission},
		{"informational arabic", "ما هي أنواع الطيور في المحمية؟", IntentInformational},
		{"informational english", "What animals live here?", IntentInformational},
		{"empty", "", IntentInformational},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectIntent(tc.query); got != tc.want {
				t.Errorf("DetectIntent(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}
