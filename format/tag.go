package format

import (
	"fmt"
	"github.com/viant/parsly"
	ftime "github.com/viant/tagly/format/time"
	"reflect"
	"strings"
)

const (
	//TagName defines mapping tag name
	TagName = "mapping"
)

// Tag represents mapping tag, i.e. `mapping:"name=id,dateFormat=YYYY-MM-DD,omitempty"`
type Tag struct {
	Name       string //matching name, field name when empty
	CaseFormat string //output key case format when struct is mapped into a map

	DateFormat string
	TimeLayout string
	Format     string
	Language   string

	Omitempty bool //skip zero source values
	Ignore    bool
}

func (t *Tag) update(key string, value string, strictMode bool) error {
	switch strings.ToLower(key) {
	case "name":
		t.Name = value
	case "dateformat", "isodateformat":
		t.DateFormat = value
		t.TimeLayout = ftime.DateFormatToTimeLayout(value)
	case "timelayout", "datelayout":
		t.TimeLayout = value
	case "format":
		t.Format = value
	case "caseformat":
		t.CaseFormat = value
	case "lang", "language":
		t.Language = value
	default:
		if strictMode {
			return fmt.Errorf("format: unknown mapping tag key %v", key)
		}
	}
	return nil
}

func (t *Tag) flag(value string, position int) bool {
	switch strings.ToLower(value) {
	case "":
		return true
	case "omitempty":
		t.Omitempty = true
	case "ignore", "-", "transient":
		t.Ignore = true
	default:
		if position > 0 || t.Name != "" {
			return false
		}
		t.Name = value
	}
	return true
}

// Parse parses mapping tag, supplied names are fallback tags (i.e. json) used for name and omitempty
func Parse(tag reflect.StructTag, names ...string) (*Tag, error) {
	ret := &Tag{}
	names = append([]string{TagName}, names...)
	for i, name := range names {
		encoded, ok := tag.Lookup(name)
		if !ok || encoded == "" {
			continue
		}
		strictMode := i == 0
		cursor := parsly.NewCursor("", []byte(encoded), 0)
		for position := 0; cursor.Pos < len(cursor.Input); position++ {
			key, value := matchPair(cursor)
			if key == "" {
				if !ret.flag(value, position) && strictMode {
					return nil, fmt.Errorf("format: unknown mapping tag flag %v", value)
				}
				continue
			}
			if err := ret.update(key, value, strictMode); err != nil {
				return nil, err
			}
		}
	}
	return ret, nil
}
