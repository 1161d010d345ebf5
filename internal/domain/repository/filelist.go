package repository

import "encoding/json"

// File name lists are stored as JSON-encoded text columns; the encoding is an
// implementation detail of the relational store and never leaks past the
// repository boundary.

func marshalFileList(names []string) (*string, error) {
	if names == nil {
		return nil, nil
	}
	b, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func unmarshalFileList(raw *string) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal([]byte(*raw), &names); err != nil {
		return nil, err
	}
	return names, nil
}
