package stdlib

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
)

// ke_json(nilai[, indentasi]) → teks
func builtinToJSON(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("ke_json", args, 1, 2); err != nil {
		return nil, err
	}
	indent := ""
	if v, ok := optArg(args, 1); ok {
		n, err := intArg("ke_json", v)
		if err != nil {
			return nil, err
		}
		indent = strings.Repeat(" ", int(n))
	}
	data, err := evaluator.ValueToJSON(args[0], indent)
	if err != nil {
		// Errors from nested dicts arrive wrapped by encoding/json.
		var rt *evaluator.RuntimeError
		if errors.As(err, &rt) {
			return nil, rt
		}
		var me *json.MarshalerError
		if errors.As(err, &me) {
			return nil, evaluator.ValueError("ke_json(): %v", me.Unwrap())
		}
		return nil, evaluator.ValueError("ke_json(): %v", err)
	}
	return evaluator.Str(data), nil
}

// dari_json(teks) → nilai
func builtinFromJSON(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("dari_json", args, 1, 1); err != nil {
		return nil, err
	}
	s, err := strArg("dari_json", args[0])
	if err != nil {
		return nil, err
	}
	return evaluator.ParseJSON([]byte(s))
}
