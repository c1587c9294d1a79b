package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSchema declares the field shapes used across these tests.
func testSchema() *Schema {
	return NewSchema(
		Field{Name: "log", Policy: Append},
		Field{Name: "category", Policy: Replace, Default: "neutral"},
		Field{Name: "count", Policy: Replace, Default: 0},
		Field{Name: "done", Policy: Replace, Default: false},
	)
}

func TestNewSchema_DuplicateField_Panics(t *testing.T) {
	assert.Panics(t, func() {
		NewSchema(
			Field{Name: "a", Policy: Replace},
			Field{Name: "a", Policy: Replace},
		)
	})
}

func TestNewSchema_EmptyName_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "state: field name cannot be empty", func() {
		NewSchema(Field{Policy: Replace})
	})
}

func TestNew_AppliesDefaults(t *testing.T) {
	s, err := New(testSchema(), nil)
	require.NoError(t, err)

	assert.Equal(t, "neutral", s.String("category"))
	assert.Equal(t, 0, s.Int("count"))
	assert.False(t, s.Bool("done"))
	assert.Empty(t, s.Seq("log"))
}

func TestNew_InitialOverridesDefaults(t *testing.T) {
	s, err := New(testSchema(), Partial{"category": "chuck", "count": 3})
	require.NoError(t, err)

	assert.Equal(t, "chuck", s.String("category"))
	assert.Equal(t, 3, s.Int("count"))
}

func TestNew_UndeclaredField_Fails(t *testing.T) {
	_, err := New(testSchema(), Partial{"bogus": 1})

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "bogus", schemaErr.Field)
}

func TestApply_ReplaceOverwrites(t *testing.T) {
	s := MustNew(testSchema(), Partial{"category": "neutral"})

	merged, err := s.Apply(Partial{"category": "all"})
	require.NoError(t, err)

	assert.Equal(t, "all", merged.String("category"))
	// Original snapshot unchanged.
	assert.Equal(t, "neutral", s.String("category"))
}

func TestApply_AppendPreservesOrder(t *testing.T) {
	s := MustNew(testSchema(), nil)

	s1, err := s.Apply(Partial{"log": []any{"a", "b"}})
	require.NoError(t, err)
	s2, err := s1.Apply(Partial{"log": []any{"c", "d"}})
	require.NoError(t, err)

	assert.Equal(t, []any{"a", "b", "c", "d"}, s2.Seq("log"))
	// Never reordered, never deduplicated.
	s3, err := s2.Apply(Partial{"log": []any{"a"}})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c", "d", "a"}, s3.Seq("log"))
}

func TestApply_AppendSingleElement(t *testing.T) {
	s := MustNew(testSchema(), nil)

	merged, err := s.Apply(Partial{"log": "only"})
	require.NoError(t, err)

	assert.Equal(t, []any{"only"}, merged.Seq("log"))
}

func TestApply_EarlierSnapshotsUnaffected(t *testing.T) {
	s := MustNew(testSchema(), nil)

	s1, err := s.Apply(Partial{"log": []any{"x"}})
	require.NoError(t, err)
	_, err = s1.Apply(Partial{"log": []any{"y"}})
	require.NoError(t, err)

	assert.Equal(t, []any{"x"}, s1.Seq("log"))
	assert.Empty(t, s.Seq("log"))
}

func TestApply_UndeclaredField_RejectsWholePartial(t *testing.T) {
	s := MustNew(testSchema(), Partial{"count": 1})

	merged, err := s.Apply(Partial{"count": 2, "bogus": true})

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "bogus", schemaErr.Field)
	// No partial application: the valid assignment was discarded too.
	assert.Equal(t, 1, merged.Int("count"))
	assert.Equal(t, 1, s.Int("count"))
}

func TestApply_EmptyPartial_NoOp(t *testing.T) {
	s := MustNew(testSchema(), Partial{"count": 7})

	merged, err := s.Apply(Partial{})
	require.NoError(t, err)

	assert.Equal(t, 7, merged.Int("count"))
}

func TestApply_Deterministic(t *testing.T) {
	s := MustNew(testSchema(), Partial{"log": []any{"a"}, "count": 1})
	p := Partial{"log": []any{"b"}, "count": 2, "done": true}

	first, err := s.Apply(p)
	require.NoError(t, err)
	second, err := s.Apply(p)
	require.NoError(t, err)

	assert.Equal(t, first.Seq("log"), second.Seq("log"))
	assert.Equal(t, first.Int("count"), second.Int("count"))
	assert.Equal(t, first.Bool("done"), second.Bool("done"))
}

func TestSchema_Fields_DeclarationOrder(t *testing.T) {
	s := testSchema()
	assert.Equal(t, []string{"log", "category", "count", "done"}, s.Fields())
}

func TestSchema_PolicyOf(t *testing.T) {
	s := testSchema()

	p, ok := s.PolicyOf("log")
	require.True(t, ok)
	assert.Equal(t, Append, p)

	p, ok = s.PolicyOf("category")
	require.True(t, ok)
	assert.Equal(t, Replace, p)

	_, ok = s.PolicyOf("missing")
	assert.False(t, ok)
}
