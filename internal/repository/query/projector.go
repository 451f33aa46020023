package query

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fitsync/training-service/internal/repository"
)

// FieldError reports an allow-listed field whose value has the wrong shape.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid value for %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ParseUpdates decodes a JSON object into updates, keeping the key order of
// the document. A repeated key keeps its first position and its last value.
func ParseUpdates(body []byte) ([]repository.Update, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("update body must be a JSON object")
	}

	var updates []repository.Update
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("update body must be a JSON object")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if i, seen := index[key]; seen {
			updates[i].Value = raw
			continue
		}
		index[key] = len(updates)
		updates = append(updates, repository.Update{Field: key, Value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return updates, nil
}

// BuildUpdate projects a sparse update onto the entity's allow-list and
// returns a single UPDATE ... RETURNING statement. Fields are kept in the
// order given, each bound as its own parameter, and the id is bound last.
// It returns repository.ErrNoUpdates when no allow-listed field remains.
func BuildUpdate(e *Entity, id string, updates []repository.Update) (string, []any, error) {
	var (
		sets []string
		args []any
	)
	for _, u := range updates {
		f, ok := e.field(u.Field)
		if !ok {
			continue
		}
		v, err := bindValue(f, u.Value)
		if err != nil {
			return "", nil, &FieldError{Field: f.Name, Err: err}
		}
		args = append(args, v)
		sets = append(sets, f.Name+" = $"+strconv.Itoa(len(args)))
	}
	if len(sets) == 0 {
		return "", nil, repository.ErrNoUpdates
	}
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		e.Table, strings.Join(sets, ", "), len(args), e.Columns)
	return sql, args, nil
}

func bindValue(f Field, v any) (any, error) {
	raw, isRaw := v.(json.RawMessage)
	if f.Kind == KindStructured {
		if isRaw {
			target := f.newTarget()
			if err := json.Unmarshal(raw, target); err != nil {
				return nil, err
			}
			return MarshalStructured(target)
		}
		return MarshalStructured(v)
	}
	if !isRaw {
		return v, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}

	var (
		out any
		err error
	)
	switch f.Kind {
	case KindText:
		var s string
		err = json.Unmarshal(raw, &s)
		out = s
	case KindTextArray:
		var ss []string
		err = json.Unmarshal(raw, &ss)
		if ss == nil {
			ss = []string{}
		}
		out = ss
	case KindInt:
		var n int
		err = json.Unmarshal(raw, &n)
		out = n
	case KindBool:
		var b bool
		err = json.Unmarshal(raw, &b)
		out = b
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarshalStructured renders a structured field as canonical JSON text.
// Nil values and nil slices become "[]" so the stored blob is always an array.
func MarshalStructured(v any) (string, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if bytes.Equal(b, []byte("null")) {
		return "[]", nil
	}
	if len(b) == 0 || b[0] != '[' {
		return "", errors.New("structured field must be a JSON array")
	}
	return string(b), nil
}
