package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lucaspazio/Financial-Model/pkg/constants"
	"github.com/lucaspazio/Financial-Model/pkg/mathutil"
)

// Scale parameter keys as they appear in config files and request bodies.
const (
	KeyMAUScale         = "mau_scale"
	KeyConvGameScale    = "conv_game_scale"
	KeyConvCourseScale  = "conv_course_scale"
	KeyMarketingScale   = "marketing_scale"
	KeyContentCostScale = "content_cost_scale"
	KeyEventYieldScale  = "event_yield_scale"
	KeyStaffScale       = "staff_scale"
	KeySrvHWScale       = "srv_hw_scale"
)

// ScaleKeys lists every recognised scale key in display order.
var ScaleKeys = []string{
	KeyMAUScale,
	KeyConvGameScale,
	KeyConvCourseScale,
	KeyMarketingScale,
	KeyContentCostScale,
	KeyEventYieldScale,
	KeyStaffScale,
	KeySrvHWScale,
}

// legacyScaleKeys maps key spellings used by older front ends to their
// current names.
var legacyScaleKeys = map[string]string{
	"game_conv_scale":   KeyConvGameScale,
	"course_conv_scale": KeyConvCourseScale,
}

// ScaleParameters are the sensitivity multipliers applied to the baseline
// plan. Values are never negative once sanitized.
type ScaleParameters struct {
	MAU         float64 `json:"mau_scale" yaml:"mau_scale"`
	ConvGame    float64 `json:"conv_game_scale" yaml:"conv_game_scale"`
	ConvCourse  float64 `json:"conv_course_scale" yaml:"conv_course_scale"`
	Marketing   float64 `json:"marketing_scale" yaml:"marketing_scale"`
	ContentCost float64 `json:"content_cost_scale" yaml:"content_cost_scale"`
	EventYield  float64 `json:"event_yield_scale" yaml:"event_yield_scale"`
	Staff       float64 `json:"staff_scale" yaml:"staff_scale"`
	SrvHW       float64 `json:"srv_hw_scale" yaml:"srv_hw_scale"`
}

// DefaultScaleParameters returns the identity scaling (every multiplier 1.0).
func DefaultScaleParameters() ScaleParameters {
	return ScaleParameters{
		MAU:         constants.DefaultScale,
		ConvGame:    constants.DefaultScale,
		ConvCourse:  constants.DefaultScale,
		Marketing:   constants.DefaultScale,
		ContentCost: constants.DefaultScale,
		EventYield:  constants.DefaultScale,
		Staff:       constants.DefaultScale,
		SrvHW:       constants.DefaultScale,
	}
}

// Sanitize replaces non-finite values with the default and clamps the rest
// into [0, constants.MaxScale].
func (p ScaleParameters) Sanitize() ScaleParameters {
	for _, f := range p.fields() {
		*f = sanitizeScale(*f)
	}
	return p
}

// AsMap returns the parameters keyed by their scale key.
func (p ScaleParameters) AsMap() map[string]float64 {
	fields := p.fields()
	m := make(map[string]float64, len(ScaleKeys))
	for i, key := range ScaleKeys {
		m[key] = *fields[i]
	}
	return m
}

// Get returns the multiplier stored under a scale key.
func (p ScaleParameters) Get(key string) (float64, bool) {
	fields := p.fields()
	for i, k := range ScaleKeys {
		if k == key {
			return *fields[i], true
		}
	}
	return 0, false
}

// With returns a copy of p with the multiplier under key replaced. Unknown
// keys leave p unchanged and report false.
func (p ScaleParameters) With(key string, value float64) (ScaleParameters, bool) {
	fields := p.fields()
	for i, k := range ScaleKeys {
		if k == key {
			*fields[i] = value
			return p, true
		}
	}
	return p, false
}

// UnmarshalJSON decodes through ParseScaleParameters, so absent keys keep
// the default multiplier rather than zero.
func (p *ScaleParameters) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode scale parameters: %w", err)
	}
	*p, _ = ParseScaleParameters(raw)
	return nil
}

// fields returns pointers to the multipliers in ScaleKeys order.
func (p *ScaleParameters) fields() []*float64 {
	return []*float64{
		&p.MAU,
		&p.ConvGame,
		&p.ConvCourse,
		&p.Marketing,
		&p.ContentCost,
		&p.EventYield,
		&p.Staff,
		&p.SrvHW,
	}
}

func sanitizeScale(v float64) float64 {
	if !mathutil.IsFinite(v) {
		return constants.DefaultScale
	}
	return mathutil.Clamp(v, 0, constants.MaxScale)
}

// ParseScaleParameters coerces a loosely typed key/value bag into
// ScaleParameters. Missing or unparseable values take the default, negative
// values clamp to zero and unknown keys are ignored. Every coercion is
// reported as a warning; none of them is an error.
func ParseScaleParameters(raw map[string]interface{}) (ScaleParameters, []string) {
	params := DefaultScaleParameters()
	var warnings []string

	fields := params.fields()
	index := make(map[string]int, len(ScaleKeys))
	for i, key := range ScaleKeys {
		index[key] = i
	}

	keys := make([]string, 0, len(raw))
	present := make(map[string]struct{}, len(raw))
	for key := range raw {
		keys = append(keys, key)
		present[normalizeScaleKey(key)] = struct{}{}
	}
	sort.Strings(keys)

	for _, rawKey := range keys {
		key := normalizeScaleKey(rawKey)
		if canonical, ok := legacyScaleKeys[key]; ok {
			if _, both := present[canonical]; both {
				warnings = append(warnings, fmt.Sprintf("ignoring %s in favour of %s", rawKey, canonical))
				continue
			}
			warnings = append(warnings, fmt.Sprintf("%s is deprecated, use %s", rawKey, canonical))
			key = canonical
		}

		i, ok := index[key]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown scale parameter %s", rawKey))
			continue
		}

		value, ok := coerceFloat(raw[rawKey])
		if !ok || !mathutil.IsFinite(value) {
			warnings = append(warnings, fmt.Sprintf("invalid value for %s, using %.1f", key, constants.DefaultScale))
			*fields[i] = constants.DefaultScale
			continue
		}
		if value < 0 {
			warnings = append(warnings, fmt.Sprintf("negative value for %s clamped to 0", key))
		} else if value > constants.MaxScale {
			warnings = append(warnings, fmt.Sprintf("value for %s clamped to %.0f", key, constants.MaxScale))
		}
		*fields[i] = sanitizeScale(value)
	}

	return params, warnings
}

// CanonicalScaleKey maps any accepted spelling of a scale key, legacy
// aliases included, to its current name.
func CanonicalScaleKey(key string) (string, bool) {
	normalized := normalizeScaleKey(key)
	if canonical, ok := legacyScaleKeys[normalized]; ok {
		return canonical, true
	}
	for _, k := range ScaleKeys {
		if k == normalized {
			return k, true
		}
	}
	return "", false
}

func normalizeScaleKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func coerceFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		return parsed, err == nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return parsed, err == nil
	}
	return 0, false
}
