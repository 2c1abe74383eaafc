package record

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	item := map[string]types.AttributeValue{
		"ProjectKey": &types.AttributeValueMemberS{Value: "site"},
		"PageKey":    &types.AttributeValueMemberS{Value: "home"},
		"order":      &types.AttributeValueMemberN{Value: "3"},
		"draft":      &types.AttributeValueMemberBOOL{Value: true},
		"cleared":    &types.AttributeValueMemberNULL{Value: true},
		"hero": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"title": &types.AttributeValueMemberS{Value: "Hello"},
			"links": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberS{Value: "/a"},
				&types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
					"weight": &types.AttributeValueMemberN{Value: "1.5"},
				}},
			}},
		}},
	}

	got := Decode(item)

	want := Record{
		"ProjectKey": "site",
		"PageKey":    "home",
		"order":      float64(3),
		"draft":      true,
		"cleared":    nil,
		"hero": map[string]any{
			"title": "Hello",
			"links": []any{"/a", map[string]any{"weight": 1.5}},
		},
	}
	assert.Equal(t, want, got)
}

func TestDecode_UnknownMemberPassesThrough(t *testing.T) {
	unknown := &types.UnknownUnionMember{Tag: "FUTURE", Value: []byte("x")}
	got := Decode(map[string]types.AttributeValue{
		"ProjectKey": &types.AttributeValueMemberS{Value: "site"},
		"future":     unknown,
		"nested": &types.AttributeValueMemberL{Value: []types.AttributeValue{unknown}},
	})

	assert.Equal(t, "site", got["ProjectKey"])
	assert.Same(t, unknown, got["future"])
	assert.Equal(t, []any{unknown}, got["nested"])
}

func TestDecodeAll_KeepsOrder(t *testing.T) {
	items := []map[string]types.AttributeValue{
		{"PageKey": &types.AttributeValueMemberS{Value: "b"}},
		{"PageKey": &types.AttributeValueMemberS{Value: "a"}},
	}
	got := DecodeAll(items)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].PageKey())
	assert.Equal(t, "a", got[1].PageKey())
}

func TestUnwrap(t *testing.T) {
	var in any
	require.NoError(t, json.Unmarshal([]byte(`{"M": {
		"ProjectKey": {"S": "site"},
		"count": {"N": "42"},
		"live": {"BOOL": false},
		"gone": {"NULL": true},
		"tags": {"L": [{"S": "x"}, {"N": "2"}]},
		"plain": "kept"
	}}`), &in))

	got := Unwrap(in)

	assert.Equal(t, map[string]any{
		"ProjectKey": "site",
		"count":      float64(42),
		"live":       false,
		"gone":       nil,
		"tags":       []any{"x", float64(2)},
		"plain":      "kept",
	}, got)
}

func TestUnwrap_LeavesPlainValues(t *testing.T) {
	plain := map[string]any{"projectKey": "site", "pages": []any{}}
	assert.Equal(t, plain, Unwrap(plain))
	assert.Equal(t, "x", Unwrap("x"))
	assert.Nil(t, Unwrap(nil))

	// A record attribute that happens to be named like a tag is not a typed value.
	rec := map[string]any{"S": "small", "projectKey": "site"}
	assert.False(t, IsTyped(rec))
	assert.Equal(t, rec, Unwrap(rec))
}

func TestUnwrap_BadNumberKept(t *testing.T) {
	assert.Equal(t, "abc", Unwrap(map[string]any{"N": "abc"}))
	assert.Equal(t, float64(7), Unwrap(map[string]any{"N": json.Number("7")}))
}

func TestCanonicalize(t *testing.T) {
	in := Record{"ProjectKey": "site", "PageKey": "home", "body": "hi"}

	got := Canonicalize(in)

	assert.Equal(t, Record{"projectKey": "site", "pageKey": "home", "body": "hi"}, got)
	assert.Contains(t, in, "ProjectKey", "input must not be modified")
}

func TestCanonicalize_TableCasingWins(t *testing.T) {
	got := Canonicalize(Record{"ProjectKey": "upper", "projectKey": "lower", "pageKey": "p"})
	assert.Equal(t, Record{"projectKey": "upper", "pageKey": "p"}, got)

	got = Canonicalize(Record{"ProjectKey": "", "projectKey": "lower"})
	assert.Equal(t, Record{"projectKey": "lower"}, got)
}

func TestKeys(t *testing.T) {
	r := Record{"projectKey": "site", "PageKey": "project-config"}
	assert.Equal(t, "site", r.ProjectKey())
	assert.Equal(t, "project-config", r.PageKey())
	assert.True(t, r.IsProjectConfig())

	assert.False(t, Record{"pageKey": "Project-Config"}.IsProjectConfig())
	assert.Equal(t, "", Record{}.ProjectKey())

	num := Record{"projectKey": json.Number("42"), "PageKey": float64(3), "pageKey": "ignored"}
	assert.Equal(t, "42", num.ProjectKey())
	assert.Equal(t, "3", num.PageKey())
	assert.Equal(t, "true", Record{"ProjectKey": true}.ProjectKey())
	assert.Equal(t, "", Record{"ProjectKey": map[string]any{"S": "x"}}.ProjectKey())

	for _, k := range []string{"ProjectKey", "PageKey", "projectKey", "pageKey"} {
		assert.True(t, IsKeyField(k), k)
	}
	assert.False(t, IsKeyField("title"))
}
