package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload as T. In-process publishers hand over
// the struct itself (or a pointer to it); anything else, such as a map read
// back from the dead-letter file, is converted through JSON.
func DecodePayload[T any](input any) (T, error) {
	var result T
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return result, fmt.Errorf("nil %T payload", result)
		}
		return *v, nil
	case nil:
		return result, fmt.Errorf("missing %T payload", result)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("failed to encode %T payload: %w", result, err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("failed to decode %T payload: %w", result, err)
	}
	return result, nil
}
