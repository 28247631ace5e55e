package rules

// defaultPatterns are the built-in sensitive-name suffixes, in precedence order.
var defaultPatterns = []string{
	`SECRETS?$`,
	`TOKENS?$`,
	`KEYS?$`,
	`PASSWORDS?$`,
	`(_|-)PW$`,
}

// DefaultPatterns returns a copy of the built-in patterns, each of which
// produces a Redact rule.
func DefaultPatterns() []string {
	out := make([]string, len(defaultPatterns))
	copy(out, defaultPatterns)
	return out
}

// Sources holds every input to Build. A nil Defaults slice disables the
// built-in rules; pass DefaultPatterns() to enable them.
type Sources struct {
	Keep     []string
	Unset    []string
	Config   []PatternAction
	Defaults []string
}

// Build assembles a RuleSet by concatenating, in order: one Keep rule per
// Keep name, one Unset rule per Unset name, the Config rules, and one Redact
// rule per default pattern. Any pattern that fails to compile aborts the
// build with an *InvalidPatternError.
func Build(src Sources) (*RuleSet, error) {
	n := len(src.Keep) + len(src.Unset) + len(src.Config) + len(src.Defaults)
	list := make([]Rule, 0, n)

	add := func(origin Origin, p Pattern, action Action) {
		list = append(list, Rule{
			ID:      len(list) + 1,
			Origin:  origin,
			Pattern: p,
			Action:  action,
		})
	}

	for _, name := range src.Keep {
		add(OriginKeep, ExactPattern(name), Keep)
	}
	for _, name := range src.Unset {
		add(OriginUnset, ExactPattern(name), Unset)
	}
	for i, pa := range src.Config {
		p, err := compileFrom(pa.Pattern, OriginConfig, i+1)
		if err != nil {
			return nil, err
		}
		add(OriginConfig, p, pa.Action)
	}
	for i, raw := range src.Defaults {
		p, err := compileFrom(raw, OriginDefault, i+1)
		if err != nil {
			return nil, err
		}
		add(OriginDefault, p, Redact)
	}

	return &RuleSet{rules: list}, nil
}

func compileFrom(src string, origin Origin, index int) (Pattern, error) {
	p, err := CompilePattern(src)
	if err != nil {
		if ipe, ok := err.(*InvalidPatternError); ok {
			ipe.Origin = origin
			ipe.Index = index
		}
		return Pattern{}, err
	}
	return p, nil
}
