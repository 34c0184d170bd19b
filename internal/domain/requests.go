package domain

import "strings"

// MaxSQLBytes bounds the size of a submitted script.
const MaxSQLBytes = 1 << 20

// DecomposeRequest asks for one script to be decomposed. An empty Dialect
// means the configured default.
type DecomposeRequest struct {
	SQL     string `json:"sql"`
	Dialect string `json:"dialect,omitempty"`
}

// Validate checks the request. An empty script is valid and decomposes to
// nothing.
func (r *DecomposeRequest) Validate() error {
	if len(r.SQL) > MaxSQLBytes {
		return ErrValidation("sql exceeds %d bytes", MaxSQLBytes)
	}
	return nil
}

// QueryRequest asks for one statement to be executed after parameter
// substitution. An empty Pattern means the configured default.
type QueryRequest struct {
	SQL        string           `json:"sql"`
	Pattern    ParameterPattern `json:"parameter_pattern,omitempty"`
	Parameters []Parameter      `json:"parameters,omitempty"`
}

// Validate checks the request.
func (r *QueryRequest) Validate() error {
	if strings.TrimSpace(r.SQL) == "" {
		return ErrValidation("sql is required")
	}
	if len(r.SQL) > MaxSQLBytes {
		return ErrValidation("sql exceeds %d bytes", MaxSQLBytes)
	}
	if r.Pattern != "" && !r.Pattern.Valid() {
		return ErrValidation("unknown parameter_pattern %q", r.Pattern)
	}
	seen := make(map[string]bool, len(r.Parameters))
	for _, p := range r.Parameters {
		if p.Name == "" {
			return ErrValidation("parameter name is required")
		}
		if seen[p.Name] {
			return ErrValidation("duplicate parameter %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
