package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeRequest_Validate(t *testing.T) {
	require.NoError(t, (&DecomposeRequest{}).Validate())
	require.NoError(t, (&DecomposeRequest{SQL: "SELECT 1", Dialect: "mysql"}).Validate())

	err := (&DecomposeRequest{SQL: strings.Repeat("x", MaxSQLBytes+1)}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestQueryRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     QueryRequest
		wantErr string
	}{
		{
			name: "valid request",
			req: QueryRequest{
				SQL:        "SELECT * FROM t WHERE id = :id",
				Pattern:    PatternJPA,
				Parameters: []Parameter{{Name: "id", Value: "1"}},
			},
		},
		{
			name: "default pattern",
			req:  QueryRequest{SQL: "SELECT 1"},
		},
		{
			name:    "empty sql",
			req:     QueryRequest{SQL: "  "},
			wantErr: "sql is required",
		},
		{
			name:    "unknown pattern",
			req:     QueryRequest{SQL: "SELECT 1", Pattern: "odbc"},
			wantErr: `unknown parameter_pattern "odbc"`,
		},
		{
			name:    "unnamed parameter",
			req:     QueryRequest{SQL: "SELECT 1", Parameters: []Parameter{{Value: "1"}}},
			wantErr: "parameter name is required",
		},
		{
			name: "duplicate parameter",
			req: QueryRequest{SQL: "SELECT 1", Parameters: []Parameter{
				{Name: "a", Value: "1"}, {Name: "a", Value: "2"},
			}},
			wantErr: `duplicate parameter "a"`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
