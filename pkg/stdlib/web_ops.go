package stdlib

import (
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
)

// http_get(url[, header]) → kamus {status, headers, content}
func builtinHTTPGet(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("http_get", args, 1, 2); err != nil {
		return nil, err
	}
	target, err := strArg("http_get", args[0])
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(target, "data:") {
		return dataURLResponse(target)
	}
	headers, _ := optArg(args, 1)
	return doRequest(h, "http_get", http.MethodGet, target, nil, "", headers)
}

// http_post(url[, data[, header]]) → kamus {status, headers, content}
//
// Dict and list data is sent as JSON; anything else as its text form.
func builtinHTTPPost(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("http_post", args, 1, 3); err != nil {
		return nil, err
	}
	target, err := strArg("http_post", args[0])
	if err != nil {
		return nil, err
	}
	var body io.Reader
	contentType := ""
	if data, ok := optArg(args, 1); ok {
		switch data.(type) {
		case *evaluator.Dict, *evaluator.List:
			encoded, err := evaluator.ValueToJSON(data, "")
			if err != nil {
				return nil, err
			}
			body = strings.NewReader(string(encoded))
			contentType = "application/json"
		default:
			s, err := h.Str(data)
			if err != nil {
				return nil, err
			}
			body = strings.NewReader(s)
			contentType = "text/plain; charset=utf-8"
		}
	}
	headers, _ := optArg(args, 2)
	return doRequest(h, "http_post", http.MethodPost, target, body, contentType, headers)
}

func doRequest(h evaluator.Host, name, method, target string, body io.Reader, contentType string, headers evaluator.Value) (evaluator.Value, error) {
	req, err := http.NewRequestWithContext(h.Context(), method, target, body)
	if err != nil {
		return nil, evaluator.IOError("%s(): %v", name, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if hd, ok := headers.(*evaluator.Dict); ok {
		for _, k := range hd.Keys() {
			v, _, _ := hd.Get(k)
			req.Header.Set(evaluator.ToStr(k), evaluator.ToStr(v))
		}
	}

	h.Logger().Debug("http request", "method", method, "url", target)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, evaluator.IOError("%s(): %v", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, evaluator.IOError("%s(): %v", name, err)
	}

	respHeaders := evaluator.NewDict()
	keys := make([]string, 0, len(resp.Header))
	for k := range resp.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_ = respHeaders.Set(evaluator.Str(strings.ToLower(k)), evaluator.Str(strings.Join(resp.Header[k], ", ")))
	}
	return response(resp.StatusCode, respHeaders, string(data))
}

// dataURLResponse serves data: URLs without touching the network.
func dataURLResponse(dataURL string) (evaluator.Value, error) {
	rest := dataURL[len("data:"):]
	_, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, evaluator.ValueError("http_get(): data URL tidak valid")
	}
	decoded, err := url.PathUnescape(payload)
	if err != nil {
		decoded = payload
	}
	return response(http.StatusOK, evaluator.NewDict(), decoded)
}

func response(status int, headers *evaluator.Dict, content string) (evaluator.Value, error) {
	out := evaluator.NewDict()
	for _, kv := range []struct {
		k string
		v evaluator.Value
	}{
		{"status", evaluator.Int(status)},
		{"headers", headers},
		{"content", evaluator.Str(content)},
	} {
		if err := out.Set(evaluator.Str(kv.k), kv.v); err != nil {
			return nil, err
		}
	}
	return out, nil
}
