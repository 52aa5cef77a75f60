package docindex

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ruleConfig is the YAML shape of one mapping rule. Extraction values may
// reference capture groups of the pattern as $name or ${name} (numeric
// references like $1 are accepted too).
type ruleConfig struct {
	Pattern  string   `yaml:"pattern"`
	Area     string   `yaml:"area"`
	Lang     string   `yaml:"lang"`
	Category []string `yaml:"category"`
	Project  string   `yaml:"project"`
}

type mappingFile struct {
	Rules []ruleConfig `yaml:"rules"`
}

// Rule is one compiled classification rule. Rules are plain data evaluated
// by a fixed matching function; there is no polymorphic dispatch.
type Rule struct {
	pattern  *regexp.Regexp
	area     string
	lang     string
	category []string
	project  string
}

// RuleSet is an ordered list of classification rules. Evaluation order is
// exactly the declaration order of the mapping file; the first matching
// rule wins.
type RuleSet struct {
	rules []Rule
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Classification is the metadata one rule extracts from a relative path.
type Classification struct {
	Area     string
	Lang     Lang
	Category []string
	Project  string
}

// LoadRuleSet reads and validates the mapping file at path. Any failure is
// a *ConfigError and fatal to startup.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Source: path, Reason: "cannot read mapping file", Err: err}
	}
	return ParseRuleSet(data, path)
}

// ParseRuleSet parses and validates a mapping document. source names the
// origin of the data for error messages.
func ParseRuleSet(data []byte, source string) (*RuleSet, error) {
	var doc mappingFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &ConfigError{Source: source, Reason: "malformed mapping file", Err: err}
	}
	if len(doc.Rules) == 0 {
		return nil, &ConfigError{Source: source, Reason: "mapping file defines zero rules"}
	}

	rs := &RuleSet{rules: make([]Rule, 0, len(doc.Rules))}
	for i, rc := range doc.Rules {
		rule, err := compileRule(rc)
		if err != nil {
			return nil, &ConfigError{Source: source, Reason: fmt.Sprintf("rule %d invalid", i+1), Err: err}
		}
		rs.rules = append(rs.rules, rule)
	}
	return rs, nil
}

func compileRule(rc ruleConfig) (Rule, error) {
	if rc.Pattern == "" {
		return Rule{}, fmt.Errorf("pattern is required")
	}
	re, err := regexp.Compile(rc.Pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("pattern does not compile: %w", err)
	}
	if rc.Area == "" {
		return Rule{}, fmt.Errorf("area is required")
	}
	if len(rc.Category) == 0 {
		return Rule{}, fmt.Errorf("at least one category tag is required")
	}

	templates := append([]string{rc.Area, rc.Lang, rc.Project}, rc.Category...)
	for _, tpl := range templates {
		if err := validateCaptureRefs(re, tpl); err != nil {
			return Rule{}, err
		}
	}

	return Rule{
		pattern:  re,
		area:     rc.Area,
		lang:     rc.Lang,
		category: rc.Category,
		project:  rc.Project,
	}, nil
}

// captureRef matches $name, ${name}, $1 and ${1} references inside an
// extraction template.
var captureRef = regexp.MustCompile(`\$(?:\{([A-Za-z_0-9]+)\}|([A-Za-z_0-9]+))`)

// validateCaptureRefs rejects templates that reference capture groups the
// pattern does not define.
func validateCaptureRefs(re *regexp.Regexp, tpl string) error {
	for _, m := range captureRef.FindAllStringSubmatch(tpl, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if n, err := strconv.Atoi(name); err == nil {
			if n < 1 || n > re.NumSubexp() {
				return fmt.Errorf("template %q references unknown capture group %d", tpl, n)
			}
			continue
		}
		found := false
		for _, sub := range re.SubexpNames() {
			if sub == name {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("template %q references unknown capture group %q", tpl, name)
		}
	}
	return nil
}

// Classify tests a slash-relative path against the rules in declaration
// order and applies the first matching rule's extraction. The boolean is
// false when no rule matches.
func (rs *RuleSet) Classify(relPath string) (Classification, bool) {
	for i := range rs.rules {
		r := &rs.rules[i]
		match := r.pattern.FindStringSubmatchIndex(relPath)
		if match == nil {
			continue
		}
		expand := func(tpl string) string {
			return string(r.pattern.ExpandString(nil, tpl, relPath, match))
		}

		var categories []string
		for _, tpl := range r.category {
			if tag := expand(tpl); tag != "" {
				categories = append(categories, tag)
			}
		}
		return Classification{
			Area:     expand(r.area),
			Lang:     Lang(expand(r.lang)),
			Category: categories,
			Project:  expand(r.project),
		}, true
	}
	return Classification{}, false
}
