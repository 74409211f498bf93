// Package inspector turns ECS components into labelled rows for display.
package inspector

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Widget selects how a field is shown.
type Widget int

const (
	WidgetLabel Widget = iota
	WidgetBar
	WidgetAngle
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"angle": WidgetAngle,
	"skip":  WidgetSkip,
}

// Field is one exported component field with its display hints.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Options map[string]string
}

// Section is one component's fields under its type name.
type Section struct {
	Title  string
	Fields []Field
}

// ParseTag parses an inspect struct tag of the form
// `inspect:"widget[,option:value...]"`, e.g. `inspect:"bar,max:10"` or
// `inspect:"label,fmt:%.2f"`. Untagged fields and unknown widgets are labels.
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)
	if tag == "" {
		return WidgetLabel, options
	}

	parts := strings.Split(tag, ",")
	widget := widgetNames[strings.TrimSpace(parts[0])]
	for _, part := range parts[1:] {
		if k, v, ok := strings.Cut(strings.TrimSpace(part), ":"); ok {
			options[k] = v
		}
	}
	return widget, options
}

// ExtractFields lists the exported, non-skipped fields of a component struct.
func ExtractFields(component any) []Field {
	v := reflect.Indirect(reflect.ValueOf(component))
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field
	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   v.Field(i).Interface(),
			Widget:  widget,
			Options: options,
		})
	}
	return fields
}

// Sections extracts every component, titled by its type name. Components
// without visible fields, such as markers, still get a section.
func Sections(components []any) []Section {
	out := make([]Section, 0, len(components))
	for _, c := range components {
		t := reflect.TypeOf(c)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		out = append(out, Section{Title: t.Name(), Fields: ExtractFields(c)})
	}
	return out
}

// Text formats a field for a one-line display.
func (f Field) Text() string {
	v, numeric := floatValue(f.Value)
	switch {
	case f.Widget == WidgetAngle && numeric:
		return fmt.Sprintf("%.1f°", v*180/math.Pi)
	case f.Widget == WidgetBar && numeric:
		return fmt.Sprintf("%.2f / %g", v, f.limit())
	}

	if format := f.Options["fmt"]; format != "" {
		return fmt.Sprintf(format, f.Value)
	}
	switch v := f.Value.(type) {
	case float64:
		return fmt.Sprintf("%.2f", v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", f.Value)
}

// Ratio is a bar's fill fraction in [0, 1]; 0 for non-numeric values.
func (f Field) Ratio() float64 {
	v, ok := floatValue(f.Value)
	if !ok {
		return 0
	}
	return min(max(v/f.limit(), 0), 1)
}

// limit returns the max option, defaulting to 1.
func (f Field) limit() float64 {
	if s, ok := f.Options["max"]; ok {
		if m, err := strconv.ParseFloat(s, 64); err == nil && m != 0 {
			return m
		}
	}
	return 1
}

func floatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
