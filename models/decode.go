package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var errNotObject = errors.New("expected a JSON object")

// requireFields reports the first key of fields that is absent from the JSON
// object in data or set to null. Keys that only differ from one of fields by
// case are rejected too, since encoding/json would otherwise bind them.
func requireFields(data []byte, object string, fields ...string) error {
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return fmt.Errorf("%s: %w", object, errNotObject)
	}

	if err := rejectCaseVariants(doc, object, fields...); err != nil {
		return err
	}

	for _, field := range fields {
		value := doc.Get(field)
		if !value.Exists() || value.Type == gjson.Null {
			return &MissingFieldError{Object: object, Field: field}
		}
	}

	return nil
}

// rejectCaseVariants fails on the first key of doc that matches a declared
// field name case-insensitively without being that exact name.
func rejectCaseVariants(doc gjson.Result, object string, fields ...string) error {
	var err error
	doc.ForEach(func(key, _ gjson.Result) bool {
		name := key.String()
		for _, field := range fields {
			if name != field && strings.EqualFold(name, field) {
				err = &UnexpectedKeyError{Object: object, Key: name, Field: field}
				return false
			}
		}
		return true
	})

	return err
}
