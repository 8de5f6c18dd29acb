package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	sig, err := NewBuilder().
		Add(TimeColumnName, ColumnTypeLong).
		Add("dim", ColumnTypeString).
		Build()
	require.NoError(t, err)
	require.Equal(t, 2, sig.Len())

	colType, ok := sig.ColumnType("dim")
	require.True(t, ok)
	require.Equal(t, ColumnTypeString, colType)

	_, ok = sig.ColumnType("missing")
	require.False(t, ok)
	require.True(t, sig.Contains(TimeColumnName))
}

func TestBuilder_DuplicateName(t *testing.T) {
	_, err := NewBuilder().
		Add("dim", ColumnTypeString).
		Add("dim", ColumnTypeLong).
		Build()
	require.Error(t, err)
}

func TestBuilder_EmptyName(t *testing.T) {
	_, err := NewBuilder().Add("", ColumnTypeString).Build()
	require.Error(t, err)
}

func TestRowSignature_EqualIsOrderSensitive(t *testing.T) {
	a, err := NewBuilder().Add("x", ColumnTypeLong).Add("y", ColumnTypeString).Build()
	require.NoError(t, err)
	b, err := NewBuilder().Add("x", ColumnTypeLong).Add("y", ColumnTypeString).Build()
	require.NoError(t, err)
	reordered, err := NewBuilder().Add("y", ColumnTypeString).Add("x", ColumnTypeLong).Build()
	require.NoError(t, err)
	retyped, err := NewBuilder().Add("x", ColumnTypeDouble).Add("y", ColumnTypeString).Build()
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(reordered))
	require.False(t, a.Equal(retyped))
}

func TestRowSignature_String(t *testing.T) {
	sig, err := NewBuilder().Add(TimeColumnName, ColumnTypeLong).Add("dim", ColumnTypeString).Build()
	require.NoError(t, err)
	require.Equal(t, "{__time:LONG, dim:STRING}", sig.String())
}

func TestParseColumnType(t *testing.T) {
	colType, err := ParseColumnType("string")
	require.NoError(t, err)
	require.Equal(t, ColumnTypeString, colType)

	colType, err = ParseColumnType("LONG")
	require.NoError(t, err)
	require.Equal(t, ColumnTypeLong, colType)

	_, err = ParseColumnType("decimal")
	require.Error(t, err)
}
