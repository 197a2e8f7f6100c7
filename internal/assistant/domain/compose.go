package domain

import (
	"fmt"

	geo "geoas_backend/internal/geofence/domain"
	"geoas_backend/internal/rag"
)

// Source names which corpus produced the final answer text.
type Source string

const (
	SourceProtected Source = "protected"
	SourceGeneral   Source = "general"
	SourceNone      Source = "none"
)

// NoAnswerText is returned when neither corpus produced usable content.
const NoAnswerText = "لم يتم العثور على إجابة مناسبة."

// fallbackDisclaimer precedes a general-rules answer when the zone-specific
// lookup came back empty.
const fallbackDisclaimer = "لم يتم العثور على نص خاص بالمحمية، وفيما يلي ما تنص عليه القواعد العامة:\n\n"

// levelDisplay maps protection levels to their display form in the
// location preamble. Unknown levels fall through to the raw value.
var levelDisplay = map[geo.ProtectionLevel]string{
	geo.LevelLow:    "منخفضة",
	geo.LevelMedium: "متوسطة",
	geo.LevelHigh:   "عالية",
}

// Answer is the composed reply returned to the caller.
type Answer struct {
	Text       string
	SourceUsed Source
}

// Compose builds the final answer from the corpus results and the location
// decision. primary is the result of the corpus the router chose; fallback is
// the general-corpus retry and is only consulted when the decision was inside
// a zone. Absent content is a normal branch here, never an error.
//
// The location preamble is prepended last and exactly once, after fallback
// and disclaimer resolution.
func Compose(primary, fallback rag.Result, decision geo.LocationDecision) Answer {
	answer := pickText(primary, fallback, decision.Inside)

	if decision.Inside && decision.Zone != nil && decision.ProtectionLevel != nil {
		answer.Text = locationPreamble(*decision.Zone, *decision.ProtectionLevel) + answer.Text
	}

	return answer
}

func pickText(primary, fallback rag.Result, inside bool) Answer {
	if inside && primary.HadContext {
		return Answer{Text: primary.Text, SourceUsed: SourceProtected}
	}

	// Outside a zone the router already queried the general corpus, so the
	// general result arrives as primary. Inside, it is the fallback retry.
	general := primary
	if inside {
		general = fallback
	}

	if general.HadContext {
		text := general.Text
		if inside {
			text = fallbackDisclaimer + text
		}
		return Answer{Text: text, SourceUsed: SourceGeneral}
	}

	return Answer{Text: NoAnswerText, SourceUsed: SourceNone}
}

func locationPreamble(zone string, level geo.ProtectionLevel) string {
	display, ok := levelDisplay[level]
	if !ok {
		display = string(level)
	}
	return fmt.Sprintf("بحسب تواجدك في محمية %s ذات مستوى الحماية %s:\n\n", zone, display)
}

// RouteCorpus selects the knowledge corpus for a location decision. Routing
// depends only on the inside flag; the protection level scopes the query,
// not the corpus.
func RouteCorpus(decision geo.LocationDecision) rag.CorpusID {
	if decision.Inside {
		return rag.CorpusProtected
	}
	return rag.CorpusGeneral
}
