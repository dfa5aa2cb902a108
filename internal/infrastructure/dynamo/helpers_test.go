package dynamo

import (
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdateExpr_SetsFields(t *testing.T) {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{
		"name": "Jane",
	})
	require.NoError(t, err)
	assert.Equal(t, "SET #f0 = :v0", expr)
	assert.Equal(t, map[string]string{"#f0": "name"}, names)
	require.Contains(t, values, ":v0")
	assert.Equal(t, "Jane", values[":v0"].(*types.AttributeValueMemberS).Value)
}

func TestBuildUpdateExpr_NilValueRemovesAttribute(t *testing.T) {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{
		"otp": nil,
	})
	require.NoError(t, err)
	assert.Equal(t, "REMOVE #f0", strings.TrimSpace(expr))
	assert.Equal(t, map[string]string{"#f0": "otp"}, names)
	assert.Nil(t, values)
}

func TestBuildUpdateExpr_MixedSetAndRemove(t *testing.T) {
	expr, names, _, err := buildUpdateExpr(map[string]interface{}{
		"verified":   true,
		"otp":        nil,
		"otp_expiry": nil,
	})
	require.NoError(t, err)
	assert.Contains(t, expr, "SET ")
	assert.Contains(t, expr, "REMOVE ")
	assert.Len(t, names, 3)
}

func TestBuildUpdateExpr_Empty(t *testing.T) {
	_, _, _, err := buildUpdateExpr(map[string]interface{}{})
	require.Error(t, err)
}

func TestStrKey(t *testing.T) {
	key := strKey("user_id", "u1")
	require.Contains(t, key, "user_id")
	assert.Equal(t, "u1", key["user_id"].(*types.AttributeValueMemberS).Value)
}
