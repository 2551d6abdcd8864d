package queuedomain

import "strings"

// maxGroupNames bounds how many names a group signup may carry.
const maxGroupNames = 4

// PerformanceInput is the validated-at-the-boundary form of a signup's
// singer fields. Each variant knows its own required-name rules; the rest of
// the engine only ever sees the combined display name.
type PerformanceInput interface {
	Type() PerformanceType

	// Names returns the raw name fields in form order, including blanks.
	Names() []string
}

// SoloInput is a single singer.
type SoloInput struct {
	Name string
}

func (SoloInput) Type() PerformanceType { return PerformanceSolo }
func (i SoloInput) Names() []string     { return []string{i.Name} }

// DuetInput is two singers performing together.
type DuetInput struct {
	Name1 string
	Name2 string
}

func (DuetInput) Type() PerformanceType { return PerformanceDuet }
func (i DuetInput) Names() []string     { return []string{i.Name1, i.Name2} }

// GroupInput is up to four singers performing together.
type GroupInput struct {
	GroupNames []string
}

func (GroupInput) Type() PerformanceType { return PerformanceGroup }
func (i GroupInput) Names() []string     { return i.GroupNames }

// ValidateInput checks the per-type name requirements and returns field-keyed
// messages: solo needs one name, duet needs two, group needs at least one of
// up to four.
func ValidateInput(input PerformanceInput) map[string]string {
	fields := map[string]string{}
	if input == nil {
		fields["performanceType"] = "performance type is required"
		return fields
	}

	switch in := input.(type) {
	case SoloInput:
		if strings.TrimSpace(in.Name) == "" {
			fields["singerName1"] = "singer name is required"
		}
	case DuetInput:
		if strings.TrimSpace(in.Name1) == "" {
			fields["singerName1"] = "first singer name is required"
		}
		if strings.TrimSpace(in.Name2) == "" {
			fields["singerName2"] = "second singer name is required"
		}
	case GroupInput:
		if len(in.GroupNames) > maxGroupNames {
			fields["groupNames"] = "a group may have at most four singers"
			break
		}
		any := false
		for _, n := range in.GroupNames {
			if strings.TrimSpace(n) != "" {
				any = true
				break
			}
		}
		if !any {
			fields["groupNames"] = "at least one group singer name is required"
		}
	default:
		fields["performanceType"] = "unknown performance type"
	}
	return fields
}

// CombinedSingerName joins the non-empty name fields with " & ", producing
// the display name the fairness calculator compares against.
func CombinedSingerName(input PerformanceInput) string {
	if input == nil {
		return ""
	}
	parts := make([]string, 0, len(input.Names()))
	for _, n := range input.Names() {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " & ")
}
