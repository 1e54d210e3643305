// Package category resolves loosely-structured session metadata to the
// closed set of practice categories. Resolution is an ordered cascade:
// practice identifier first, then practice mode, then the config snapshot's
// practice type, then the legacy domain tag. The first hit wins; an
// unresolved session matches no obligation.
package category

import (
	"strings"

	"github.com/calumwright/praxis/internal/models"
)

type rule struct {
	substrings []string
	category   models.CategoryID
}

// Rule order matters: earlier rules shadow later ones for the same input.
var practiceIDRules = []rule{
	{[]string{"breath"}, models.CategoryBreathwork},
	{[]string{"aware", "vipassana", "insight"}, models.CategoryAwareness},
	{[]string{"body", "scan", "somatic"}, models.CategoryBodyScan},
	{[]string{"visual", "cymatic", "photic", "mandala", "kasina"}, models.CategoryVisualization},
	{[]string{"sound", "binaural", "isochronic"}, models.CategorySound},
	{[]string{"ritual", "integration"}, models.CategoryRitual},
	{[]string{"wisdom", "treatise"}, models.CategoryWisdom},
	{[]string{"circuit"}, models.CategoryCircuitTraining},
}

var practiceModeRules = []rule{
	{[]string{"circuit"}, models.CategoryCircuitTraining},
	{[]string{"ritual"}, models.CategoryRitual},
	{[]string{"breath"}, models.CategoryBreathwork},
	{[]string{"aware", "vipassana"}, models.CategoryAwareness},
	{[]string{"body", "scan"}, models.CategoryBodyScan},
	{[]string{"visual", "cymatic"}, models.CategoryVisualization},
	{[]string{"sound"}, models.CategorySound},
}

var configTypeRules = []rule{
	{[]string{"breath"}, models.CategoryBreathwork},
	{[]string{"aware", "insight", "vipassana"}, models.CategoryAwareness},
	{[]string{"body", "scan"}, models.CategoryBodyScan},
	{[]string{"visual", "cymatic", "photic"}, models.CategoryVisualization},
	{[]string{"sound", "binaural"}, models.CategorySound},
	{[]string{"ritual", "integration"}, models.CategoryRitual},
	{[]string{"wisdom"}, models.CategoryWisdom},
	{[]string{"circuit"}, models.CategoryCircuitTraining},
}

// Legacy domain tags match exactly, not by substring.
var domainRules = map[string]models.CategoryID{
	"breathwork":       models.CategoryBreathwork,
	"visualization":    models.CategoryVisualization,
	"wisdom":           models.CategoryWisdom,
	"focus":            models.CategoryAwareness,
	"awareness":        models.CategoryAwareness,
	"circuit":          models.CategoryCircuitTraining,
	"circuit-training": models.CategoryCircuitTraining,
}

func applyRules(value string, rules []rule) (models.CategoryID, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", false
	}
	for _, r := range rules {
		for _, sub := range r.substrings {
			if strings.Contains(v, sub) {
				return r.category, true
			}
		}
	}
	return "", false
}

// Resolve classifies a session into a practice category. It returns the
// empty CategoryID when nothing matches.
func Resolve(session *models.Session) models.CategoryID {
	if session == nil {
		return ""
	}

	if cat, ok := applyRules(session.PracticeID, practiceIDRules); ok {
		return cat
	}

	if cat, ok := applyRules(session.PracticeMode, practiceModeRules); ok {
		return cat
	}

	if session.ConfigSnapshot != nil {
		if cat, ok := applyRules(session.ConfigSnapshot.PracticeType, configTypeRules); ok {
			return cat
		}
	}

	domain := strings.ToLower(strings.TrimSpace(session.Domain))
	if cat, ok := domainRules[domain]; ok {
		return cat
	}

	return ""
}
