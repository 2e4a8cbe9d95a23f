package services

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPrefixSwapExpr(t *testing.T) {
	// A prefix whose byte length and code-point length differ, so a
	// mismatched offset unit would corrupt the rewrite.
	oldPrefix := "u1/fotoğraflar"
	require.NotEqual(t, len(oldPrefix), utf8.RuneCountInString(oldPrefix))

	expr := prefixSwapExpr("location", oldPrefix, "u1/photos")

	concat, ok := expr["$concat"].(bson.A)
	require.True(t, ok)
	require.Len(t, concat, 2)
	assert.Equal(t, "u1/photos", concat[0])

	substr, ok := concat[1].(bson.M)["$substrBytes"].(bson.A)
	require.True(t, ok, "the substring operator must count bytes, matching len() on the offset")
	require.Len(t, substr, 3)
	assert.Equal(t, "$location", substr[0])
	assert.Equal(t, len(oldPrefix), substr[1])

	subtract, ok := substr[2].(bson.M)["$subtract"].(bson.A)
	require.True(t, ok)
	assert.Equal(t, bson.M{"$strLenBytes": "$location"}, subtract[0])
	assert.Equal(t, len(oldPrefix), subtract[1])
}
