package css

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	selcss "github.com/ericchiang/css"
)

// Declaration is one property: value pair of a rule, after shorthand expansion.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Rule is a single selector with its declarations. A source rule with a
// selector list becomes one Rule per selector.
type Rule struct {
	Selector     string
	Specificity  int
	Declarations []Declaration
	MediaQuery   string // empty when the rule is not inside @media

	sel *selcss.Selector
}

// Stylesheet represents a parsed CSS stylesheet
type Stylesheet struct {
	Rules []Rule
	// Skipped holds selectors that could not be compiled.
	Skipped []string
}

// ParseStylesheet parses CSS stylesheet content into rules. Rules whose
// selector is not supported are recorded in Skipped rather than failing
// the whole sheet.
func ParseStylesheet(src string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	if strings.TrimSpace(src) == "" {
		return sheet, nil
	}
	parsed, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing stylesheet: %w", err)
	}
	sheet.addRules(parsed.Rules, "")
	return sheet, nil
}

// MustParseStylesheet is like ParseStylesheet but panics on error. It is
// meant for built-in sheets.
func MustParseStylesheet(src string) *Stylesheet {
	s, err := ParseStylesheet(src)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Stylesheet) addRules(rules []*css.Rule, media string) {
	for _, r := range rules {
		if r.Kind == css.AtRule {
			if strings.EqualFold(r.Name, "@media") {
				s.addRules(r.Rules, r.Prelude)
			}
			continue
		}
		decls := expandDeclarations(r.Declarations)
		for _, selector := range r.Selectors {
			selector = strings.TrimSpace(selector)
			compiled, err := selcss.Parse(selector)
			if err != nil {
				s.Skipped = append(s.Skipped, selector)
				continue
			}
			s.Rules = append(s.Rules, Rule{
				Selector:     selector,
				Specificity:  Specificity(selector),
				Declarations: decls,
				MediaQuery:   media,
				sel:          compiled,
			})
		}
	}
}

func expandDeclarations(in []*css.Declaration) []Declaration {
	var out []Declaration
	for _, d := range in {
		style := NewStyle()
		expandShorthand(style, strings.ToLower(d.Property), strings.TrimSpace(d.Value))
		// Longhands from one shorthand are independent, so map order is fine.
		for k, v := range style.Properties {
			out = append(out, Declaration{Property: k, Value: v, Important: d.Important})
		}
	}
	return out
}

// Specificity returns a single number ordering selectors as CSS does:
// ids weigh 100, classes, attributes and pseudo-classes 10, types 1.
func Specificity(selector string) int {
	score := 0
	fields := strings.FieldsFunc(selector, func(r rune) bool {
		return r == ' ' || r == '>' || r == '+' || r == '~'
	})
	for _, compound := range fields {
		i := 0
		if i < len(compound) && compound[i] != '#' && compound[i] != '.' && compound[i] != '[' && compound[i] != ':' && compound[i] != '*' {
			score++
		}
		for i < len(compound) {
			switch compound[i] {
			case '#':
				score += 100
			case '.', '[':
				score += 10
			case ':':
				if i+1 < len(compound) && compound[i+1] == ':' {
					score++
					i++
				} else {
					score += 10
				}
			}
			i++
		}
	}
	return score
}

// EvaluateMediaQuery reports whether a media prelude such as
// "screen and (max-width: 600px)" applies at the given viewport width.
// Unknown features do not match; an empty query always matches.
func EvaluateMediaQuery(query string, viewportWidth float64) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, part := range strings.Split(query, " and ") {
		part = strings.TrimSpace(part)
		switch part {
		case "screen", "all", "only screen":
			continue
		}
		if !strings.HasPrefix(part, "(") || !strings.HasSuffix(part, ")") {
			return false
		}
		feature, value, ok := strings.Cut(strings.Trim(part, "()"), ":")
		if !ok {
			return false
		}
		v, ok := ParseLength(value)
		if !ok {
			return false
		}
		switch strings.TrimSpace(feature) {
		case "min-width":
			if viewportWidth < v {
				return false
			}
		case "max-width":
			if viewportWidth > v {
				return false
			}
		default:
			return false
		}
	}
	return true
}
