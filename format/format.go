package format

import (
	"fmt"
	"github.com/viant/tagly/format/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"time"
)

// FormatTime formats time with tag layout, RFC3339 by default
func (t *Tag) FormatTime(ts time.Time) string {
	if t == nil || t.TimeLayout == "" {
		return ts.Format(time.RFC3339)
	}
	return ts.Format(t.TimeLayout)
}

// FormatName formats name with tag case format
func (t *Tag) FormatName(name string) string {
	if t == nil {
		return name
	}
	if t.Name != "" {
		name = t.Name
	}
	if t.CaseFormat == "" || t.CaseFormat == "-" {
		return name
	}
	from := text.DetectCaseFormat(name)
	if !from.IsDefined() {
		from = text.CaseFormatUpperCamel
	}
	return from.Format(name, text.CaseFormat(t.CaseFormat))
}

// FormatFloat formats float with tag format
func (t *Tag) FormatFloat(f float64) (string, error) {
	tag := language.AmericanEnglish
	if t.Language != "" {
		parsed, err := language.Parse(t.Language)
		if err != nil {
			return "", fmt.Errorf("format: invalid language %v: %w", t.Language, err)
		}
		tag = parsed
	}
	p := message.NewPrinter(tag)
	switch t.Format {
	case "Decimal":
		return p.Sprintf("%v", number.Decimal(f)), nil
	default:
		return "", fmt.Errorf("format: %s not yet supported", t.Format)
	}
}
