package cinemamodel

import "encoding/json"

// Envelope is the wrapper every successful API response arrives in.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

// Page is the paginated collection shape returned by list endpoints.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// PageParams are passed through to the server untouched. Nil means "server default".
type PageParams struct {
	Page *int
	Size *int
}

// ErrorBody is the JSON body the server sends with any non-2xx response.
// Details is a field -> message map for validation failures and free-form otherwise.
type ErrorBody struct {
	Timestamp string          `json:"timestamp,omitempty"`
	Code      int             `json:"code,omitempty"`
	Message   string          `json:"message"`
	Details   json.RawMessage `json:"details,omitempty"`
	Path      string          `json:"path,omitempty"`
}

// FieldErrors decodes Details as a validation map. ok is false when Details is
// absent, not a string map, or the missing-parameter shape.
func (e ErrorBody) FieldErrors() (map[string]string, bool) {
	fields, ok := e.stringDetails()
	if !ok {
		return nil, false
	}
	if _, missing := missingParameter(fields); missing {
		return nil, false
	}
	return fields, true
}

// MissingParameter reports the query parameter named by a missing-parameter
// error, whose details are exactly {"parameter": name, "type": javaType}.
func (e ErrorBody) MissingParameter() (string, bool) {
	fields, ok := e.stringDetails()
	if !ok {
		return "", false
	}
	return missingParameter(fields)
}

func missingParameter(fields map[string]string) (string, bool) {
	name, hasName := fields["parameter"]
	_, hasType := fields["type"]
	if len(fields) != 2 || !hasName || !hasType {
		return "", false
	}
	return name, true
}

func (e ErrorBody) stringDetails() (map[string]string, bool) {
	if len(e.Details) == 0 {
		return nil, false
	}
	fields := map[string]string{}
	if err := json.Unmarshal(e.Details, &fields); err != nil || len(fields) == 0 {
		return nil, false
	}
	return fields, true
}
