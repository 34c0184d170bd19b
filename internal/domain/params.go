package domain

// Parameter is a named value substituted into a statement before it runs.
type Parameter struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// ParameterPattern selects the placeholder syntax parameters replace.
type ParameterPattern string

const (
	// PatternMyBatis replaces #{name}.
	PatternMyBatis ParameterPattern = "mybatis"
	// PatternJPA replaces :name.
	PatternJPA ParameterPattern = "jpa"
	// PatternDapper replaces @name.
	PatternDapper ParameterPattern = "dapper"
	// PatternLog replaces the first $name only.
	PatternLog ParameterPattern = "log"
)

// ParameterPatterns lists every supported pattern.
func ParameterPatterns() []ParameterPattern {
	return []ParameterPattern{PatternMyBatis, PatternJPA, PatternDapper, PatternLog}
}

// Valid reports whether p names a supported pattern.
func (p ParameterPattern) Valid() bool {
	switch p {
	case PatternMyBatis, PatternJPA, PatternDapper, PatternLog:
		return true
	}
	return false
}
