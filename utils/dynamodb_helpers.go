package utils

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var (
	ErrAttributeMissing = errors.New("attribute missing")
	ErrAttributeType    = errors.New("attribute has unexpected type")
)

// ExtractInt64 reads a numeric attribute. Missing and mistyped attributes are reported separately.
func ExtractInt64(item map[string]types.AttributeValue, field string) (int64, error) {
	attr, ok := item[field]
	if !ok || attr == nil {
		return 0, fmt.Errorf("%s: %w", field, ErrAttributeMissing)
	}
	if _, isNull := attr.(*types.AttributeValueMemberNULL); isNull {
		return 0, fmt.Errorf("%s: %w", field, ErrAttributeMissing)
	}
	n, ok := attr.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("%s: %w", field, ErrAttributeType)
	}
	v, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, ErrAttributeType)
	}
	return v, nil
}

// ExtractMap reads a nested map attribute
func ExtractMap(item map[string]types.AttributeValue, field string) (map[string]types.AttributeValue, error) {
	attr, ok := item[field]
	if !ok || attr == nil {
		return nil, fmt.Errorf("%s: %w", field, ErrAttributeMissing)
	}
	m, ok := attr.(*types.AttributeValueMemberM)
	if !ok {
		return nil, fmt.Errorf("%s: %w", field, ErrAttributeType)
	}
	return m.Value, nil
}

// NumberKey builds a single numeric key for GetItem
func NumberKey(field string, value int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		field: &types.AttributeValueMemberN{Value: strconv.FormatInt(value, 10)},
	}
}

// StringKey builds a single string key for GetItem
func StringKey(field, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		field: &types.AttributeValueMemberS{Value: value},
	}
}
