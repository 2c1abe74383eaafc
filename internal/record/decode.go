package record

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Decode unwraps a DynamoDB item into a Record. Maps and lists are
// unwrapped recursively; union members the SDK does not know are passed
// through unchanged.
func Decode(item map[string]types.AttributeValue) Record {
	out := make(Record, len(item))
	for k, av := range item {
		out[k] = decodeValue(av)
	}
	return out
}

// DecodeAll decodes every item, keeping order.
func DecodeAll(items []map[string]types.AttributeValue) []Record {
	out := make([]Record, 0, len(items))
	for _, it := range items {
		out = append(out, Decode(it))
	}
	return out
}

func decodeValue(av types.AttributeValue) any {
	switch v := av.(type) {
	case nil:
		return nil
	case *types.AttributeValueMemberM:
		m := make(map[string]any, len(v.Value))
		for k, inner := range v.Value {
			m[k] = decodeValue(inner)
		}
		return m
	case *types.AttributeValueMemberL:
		l := make([]any, 0, len(v.Value))
		for _, inner := range v.Value {
			l = append(l, decodeValue(inner))
		}
		return l
	case *types.AttributeValueMemberS, *types.AttributeValueMemberN,
		*types.AttributeValueMemberBOOL, *types.AttributeValueMemberNULL,
		*types.AttributeValueMemberSS, *types.AttributeValueMemberNS,
		*types.AttributeValueMemberB, *types.AttributeValueMemberBS:
		var out any
		if err := attributevalue.Unmarshal(av, &out); err != nil {
			return av
		}
		return out
	default:
		return av
	}
}

// DynamoDB-JSON type tags understood by Unwrap.
const (
	tagS    = "S"
	tagN    = "N"
	tagBOOL = "BOOL"
	tagM    = "M"
	tagL    = "L"
	tagNULL = "NULL"
	tagSS   = "SS"
	tagNS   = "NS"
)

// IsTyped reports whether v is a DynamoDB-JSON typed value such as
// {"S": "x"}: a single-key object whose key is a known type tag.
func IsTyped(v any) bool {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return false
	}
	for k := range m {
		switch k {
		case tagS, tagN, tagBOOL, tagM, tagL, tagNULL, tagSS, tagNS:
			return true
		}
	}
	return false
}

// Unwrap converts a DynamoDB-JSON typed value into its plain form.
// Anything that is not a typed value is returned unchanged.
func Unwrap(v any) any {
	if v == nil {
		return nil
	}
	if !IsTyped(v) {
		return v
	}
	m := v.(map[string]any)
	for tag, inner := range m {
		switch tag {
		case tagS, tagBOOL:
			return inner
		case tagN:
			return parseNumber(inner)
		case tagNULL:
			return nil
		case tagM:
			obj, ok := inner.(map[string]any)
			if !ok {
				return v
			}
			out := make(map[string]any, len(obj))
			for k, field := range obj {
				out[k] = Unwrap(field)
			}
			return out
		case tagL:
			list, ok := inner.([]any)
			if !ok {
				return v
			}
			out := make([]any, 0, len(list))
			for _, el := range list {
				out = append(out, Unwrap(el))
			}
			return out
		case tagSS:
			return inner
		case tagNS:
			list, ok := inner.([]any)
			if !ok {
				return v
			}
			out := make([]any, 0, len(list))
			for _, el := range list {
				out = append(out, parseNumber(el))
			}
			return out
		}
	}
	return v
}

// parseNumber turns the textual N value into a float64, leaving anything it
// cannot parse as it was.
func parseNumber(v any) any {
	var s string
	switch n := v.(type) {
	case string:
		s = n
	case interface{ String() string }:
		s = n.String()
	default:
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return v
	}
	return f
}
