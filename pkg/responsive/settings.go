package responsive

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"rtable/pkg/dom"
)

// StartKind selects where collapsing begins.
type StartKind int

const (
	StartLast StartKind = iota
	StartFirst
	StartIndex
)

// Start is the column collapsing begins from: the first column, the last
// one, or an explicit index. An index outside (0, columns) falls back to
// the last column.
type Start struct {
	Kind  StartKind
	Index int
}

func (s Start) String() string {
	switch s.Kind {
	case StartFirst:
		return "first"
	case StartIndex:
		return strconv.Itoa(s.Index)
	}
	return "last"
}

// ParseStart parses "first", "last" or an integer.
func ParseStart(v string) (Start, error) {
	switch v = strings.TrimSpace(v); v {
	case "first":
		return Start{Kind: StartFirst}, nil
	case "last":
		return Start{Kind: StartLast}, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return Start{}, fmt.Errorf("%w: start %q", ErrInvalidSettings, v)
	}
	return Start{Kind: StartIndex, Index: i}, nil
}

func (s *Start) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: start must be first, last or a number (line %d)", ErrInvalidSettings, node.Line)
	}
	v, err := ParseStart(node.Value)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Start) MarshalYAML() (interface{}, error) {
	if s.Kind == StartIndex {
		return s.Index, nil
	}
	return s.String(), nil
}

// Direction is the collapse direction.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// SelectorKind is the kind of a column selector.
type SelectorKind int

const (
	SelectFirst SelectorKind = iota
	SelectLast
	SelectIndex
	SelectAll
)

// Selector picks columns: first, last, an index or every column ("*").
type Selector struct {
	Kind  SelectorKind
	Index int
}

func (s Selector) String() string {
	switch s.Kind {
	case SelectFirst:
		return "first"
	case SelectLast:
		return "last"
	case SelectAll:
		return "*"
	}
	return strconv.Itoa(s.Index)
}

// ParseSelector parses "first", "last", "*" or a non-negative integer.
func ParseSelector(v string) (Selector, error) {
	switch v = strings.TrimSpace(v); v {
	case "first":
		return Selector{Kind: SelectFirst}, nil
	case "last":
		return Selector{Kind: SelectLast}, nil
	case "*":
		return Selector{Kind: SelectAll}, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		return Selector{}, fmt.Errorf("%w: column selector %q", ErrInvalidSettings, v)
	}
	return Selector{Kind: SelectIndex, Index: i}, nil
}

// Matches reports whether column col of a table with max columns is selected.
func (s Selector) Matches(col, max int) bool {
	switch s.Kind {
	case SelectFirst:
		return col == 0
	case SelectLast:
		return col == max-1
	case SelectAll:
		return col >= 0 && col < max
	}
	return col == s.Index
}

func (s *Selector) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: column selector must be a scalar (line %d)", ErrInvalidSettings, node.Line)
	}
	v, err := ParseSelector(node.Value)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Selector) MarshalYAML() (interface{}, error) {
	if s.Kind == SelectIndex {
		return s.Index, nil
	}
	return s.String(), nil
}

// Settings configure one responsive table. They are resolved once, when the
// controller is created.
type Settings struct {
	Start             Start     `yaml:"start"`
	CollapseDirection Direction `yaml:"collapseDirection"`

	ExpandTriggerClass   string `yaml:"expandTriggerClass"`
	ExpandTriggerHTML    string `yaml:"expandTriggerHtml"`
	CollapseTriggerClass string `yaml:"collapseTriggerClass"`
	CollapseTriggerHTML  string `yaml:"collapseTriggerHtml"`

	// EmptyHeader moves the collapsed label out of the header row into the
	// table body.
	EmptyHeader bool `yaml:"emptyHeader"`

	// ExpandAlways and CollapseAlways are validated and reported but the
	// fitting does not consult them.
	ExpandAlways   []Selector `yaml:"expandAlways"`
	CollapseAlways []Selector `yaml:"collapseAlways"`
}

// DefaultSettings returns the stock configuration: collapse from the last
// column towards the first, "+" and "-" triggers.
func DefaultSettings() Settings {
	return Settings{
		Start:                Start{Kind: StartLast},
		CollapseDirection:    RTL,
		ExpandTriggerClass:   "js-expand-trigger",
		ExpandTriggerHTML:    "+",
		CollapseTriggerClass: "js-collapse-trigger",
		CollapseTriggerHTML:  "-",
		ExpandAlways:         []Selector{{Kind: SelectFirst}},
		CollapseAlways:       []Selector{{Kind: SelectIndex, Index: 2}, {Kind: SelectAll}},
	}
}

func (s Settings) Validate() error {
	if s.CollapseDirection != LTR && s.CollapseDirection != RTL {
		return fmt.Errorf("%w: collapseDirection %q", ErrInvalidSettings, s.CollapseDirection)
	}
	if s.ExpandTriggerClass == "" || s.CollapseTriggerClass == "" {
		return fmt.Errorf("%w: trigger classes must not be empty", ErrInvalidSettings)
	}
	if strings.ContainsAny(s.ExpandTriggerClass+s.CollapseTriggerClass, " \t\n") {
		return fmt.Errorf("%w: trigger class must be a single class name", ErrInvalidSettings)
	}
	if s.ExpandTriggerClass == s.CollapseTriggerClass {
		return fmt.Errorf("%w: expand and collapse trigger classes must differ", ErrInvalidSettings)
	}
	return nil
}

// LoadSettings decodes YAML settings over the defaults. Empty input yields
// the defaults.
func LoadSettings(r io.Reader) (Settings, error) {
	return DecodeSettings(r, DefaultSettings())
}

// DecodeSettings decodes YAML settings over base. Keys absent from the
// input keep the value from base.
func DecodeSettings(r io.Reader, base Settings) (Settings, error) {
	s := base
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// SettingsFromAttributes overlays the data-* attributes of a table on base.
// Recognised attributes: data-start, data-collapse-direction,
// data-empty-header, data-expand-trigger-class, data-expand-trigger-html,
// data-collapse-trigger-class, data-collapse-trigger-html,
// data-expand-always and data-collapse-always (comma separated selectors).
func SettingsFromAttributes(n *html.Node, base Settings) (Settings, error) {
	s := base
	if v, ok := dom.GetAttribute(n, "data-start"); ok {
		start, err := ParseStart(v)
		if err != nil {
			return Settings{}, err
		}
		s.Start = start
	}
	if v, ok := dom.GetAttribute(n, "data-collapse-direction"); ok {
		s.CollapseDirection = Direction(strings.TrimSpace(v))
	}
	if v, ok := dom.GetAttribute(n, "data-empty-header"); ok {
		if v == "" {
			s.EmptyHeader = true
		} else {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Settings{}, fmt.Errorf("%w: data-empty-header %q", ErrInvalidSettings, v)
			}
			s.EmptyHeader = b
		}
	}
	strs := map[string]*string{
		"data-expand-trigger-class":   &s.ExpandTriggerClass,
		"data-expand-trigger-html":    &s.ExpandTriggerHTML,
		"data-collapse-trigger-class": &s.CollapseTriggerClass,
		"data-collapse-trigger-html":  &s.CollapseTriggerHTML,
	}
	for attr, dst := range strs {
		if v, ok := dom.GetAttribute(n, attr); ok {
			*dst = v
		}
	}
	sels := map[string]*[]Selector{
		"data-expand-always":   &s.ExpandAlways,
		"data-collapse-always": &s.CollapseAlways,
	}
	for attr, dst := range sels {
		v, ok := dom.GetAttribute(n, attr)
		if !ok {
			continue
		}
		list, err := parseSelectorList(v)
		if err != nil {
			return Settings{}, err
		}
		*dst = list
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func parseSelectorList(v string) ([]Selector, error) {
	var out []Selector
	for _, part := range strings.Split(v, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		sel, err := ParseSelector(part)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}
