package expr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCondition(t *testing.T) {
	row := createExprTestRow(t, 3, 65, 1.5, "bob", true)
	for _, tc := range []struct {
		sql      string
		expected bool
	}{
		{"age > 60", true},
		{"age > 60 AND id != 3", false},
		{"age > 60 OR id <> 3", true},
		{"NOT active", false},
		{"name = 'bob' AND score >= 1.5", true},
		{"name IS NULL", false},
		{"name IS NOT NULL", true},
		{"abs(id - 10) = 7", true},
		{"id IN (1, 2, 3)", true},
		{"id NOT IN (1, 2)", true},
		{"age BETWEEN 60 AND 70", true},
		{"age NOT BETWEEN 60 AND 70", false},
		{"-age < 0", true},
		{"age * 2 = 130 AND (id = 1 OR id = 3)", true},
		{"active = true", true},
		{"age > 10000000000", false},
	} {
		pred, err := ParseCondition(tc.sql)
		require.Nil(t, err, tc.sql)
		require.Nil(t, ValidatePredicate(pred, row.Schema()), tc.sql)
		keep, err := EvalPredicate(pred, row)
		require.Nil(t, err, tc.sql)
		require.Equal(t, tc.expected, keep, tc.sql)
	}
}

func TestParseConditionErrors(t *testing.T) {
	for _, sql := range []string{
		"age >",
		"",
		"age > 1; DELETE FROM people",
		"age > 1 ORDER BY age",
		"upper(name) = 'BOB'",
	} {
		_, err := ParseCondition(sql)
		require.NotNil(t, err, sql)
	}
}

func TestParseProjection(t *testing.T) {
	outputs, err := ParseProjection("id, age * 2 AS double_age, abs(score)")
	require.Nil(t, err)
	require.Len(t, outputs, 3)
	require.Equal(t, "id", OutputName(outputs[0]))
	require.Equal(t, "double_age", OutputName(outputs[1]))
	require.Equal(t, "abs(score)", OutputName(outputs[2]))
	row := createExprTestRow(t, 3, 65, -1.5, "bob", true)
	v, err := outputs[1].Eval(row)
	require.Nil(t, err)
	require.Equal(t, int64(130), v)
	_, err = ParseProjection("*")
	require.NotNil(t, err)
}
