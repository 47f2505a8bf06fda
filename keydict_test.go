package boon

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonKeyDictionaryShape(t *testing.T) {
	require.Len(t, commonKeys, 128, "dictionary must fill the single-byte band exactly")

	seen := make(map[string]bool, len(commonKeys))
	for _, k := range commonKeys {
		assert.False(t, seen[k], "duplicate common key %q", k)
		assert.NotEmpty(t, k)
		seen[k] = true
	}

	for i, k := range commonKeys {
		assert.Equal(t, i, commonKeyIndex[k])
	}
}

func TestCommonKeyEncodesAsOneByte(t *testing.T) {
	data, err := Encode(Object(M("id", Bool(true))), WithoutHeader())
	require.NoError(t, err)
	// obj8 tag + count + key code + bool tag.
	assert.Equal(t, []byte{tagObj8, 1, keyCommonBase + 0, tagTrue}, data)
}

// batchRecords builds n structurally identical records sharing keys that
// are not in the common dictionary.
func batchRecords(n int) Value {
	records := make([]Value, n)
	for i := range records {
		records[i] = Object(
			M("speaker", String(fmt.Sprintf("agent-%d", i))),
			M("utterance", String("hello there")),
			M("sentiment", Number(0.25)),
		)
	}
	return Array(records...)
}

func TestKeyTableIdempotence(t *testing.T) {
	v := batchRecords(50)

	first, err := Encode(v)
	require.NoError(t, err)
	second, err := Encode(v)
	require.NoError(t, err)

	assert.Equal(t, first, second, "auto mode must be deterministic")
}

func TestKeyTableSizeWin(t *testing.T) {
	v := batchRecords(50)

	withTable, err := Encode(v, WithKeyTable(KeyTableOn))
	require.NoError(t, err)
	withoutTable, err := Encode(v, WithKeyTable(KeyTableOff))
	require.NoError(t, err)

	assert.Less(t, len(withTable), len(withoutTable))
	assert.Equal(t, tableTag, withTable[4], "table variant discriminator")

	gotWith, err := Decode(withTable)
	require.NoError(t, err)
	gotWithout, err := Decode(withoutTable)
	require.NoError(t, err)
	assert.True(t, Equal(gotWith, gotWithout))
	assert.True(t, Equal(v, gotWith))
}

func TestKeyTableAutoEnablesOnRepeatedKeys(t *testing.T) {
	v := batchRecords(50)

	auto, err := Encode(v)
	require.NoError(t, err)
	forced, err := Encode(v, WithKeyTable(KeyTableOn))
	require.NoError(t, err)

	assert.Equal(t, forced, auto, "auto must pick the table when it wins")
}

func TestKeyTableAutoRefusesSingletonKeys(t *testing.T) {
	// Every key occurs exactly once: a table is pure overhead.
	v := Object(
		M("alpha_field", Int(1)),
		M("beta_field", Int(2)),
		M("gamma_field", Int(3)),
		M("delta_field", Int(4)),
	)

	auto, err := Encode(v)
	require.NoError(t, err)
	off, err := Encode(v, WithKeyTable(KeyTableOff))
	require.NoError(t, err)

	assert.Equal(t, off, auto)
	assert.Equal(t, Version, auto[4], "no table discriminator expected")
}

func TestKeyTableIgnoresCommonKeys(t *testing.T) {
	// All keys are in the common dictionary; they cost one byte with or
	// without a table, so no table must be written even when forced.
	v := Array(
		Object(M("id", Int(1)), M("name", String("a"))),
		Object(M("id", Int(2)), M("name", String("b"))),
		Object(M("id", Int(3)), M("name", String("c"))),
	)

	forced, err := Encode(v, WithKeyTable(KeyTableOn))
	require.NoError(t, err)
	assert.Equal(t, Version, forced[4], "common keys alone never justify a table")
}

func TestKeyTableHeaderlessFallsBack(t *testing.T) {
	v := batchRecords(10)

	frag, err := Encode(v, WithoutHeader(), WithKeyTable(KeyTableOn))
	require.NoError(t, err)

	got, err := Decode(frag, AsFragment())
	require.NoError(t, err)
	assert.True(t, Equal(v, got))
}

func TestPlanKeyTableDeterministicOrder(t *testing.T) {
	v := Array(
		Object(M("zulu_key", Int(1)), M("alpha_key", Int(2))),
		Object(M("zulu_key", Int(3)), M("alpha_key", Int(4))),
	)

	plan := planKeyTable(v, KeyTableOn, nil)
	require.NotNil(t, plan)
	assert.Equal(t, []string{"zulu_key", "alpha_key"}, plan.keys,
		"first-encounter order, not lexical order")
}

func TestLiteralKeySize(t *testing.T) {
	assert.Equal(t, 1+3, literalKeySize("abc"))
	long := make([]byte, 200)
	assert.Equal(t, 3+200, literalKeySize(string(long)))
	huge := make([]byte, 70_000)
	assert.Equal(t, 5+70_000, literalKeySize(string(huge)))
}
