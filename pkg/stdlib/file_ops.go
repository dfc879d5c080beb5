package stdlib

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
)

func pathArg(name string, v evaluator.Value) (string, error) {
	p, err := strArg(name, v)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.Abs(p)
	if err != nil {
		return "", evaluator.IOError("%s(): path tidak valid: %v", name, err)
	}
	return resolved, nil
}

func fileError(name, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return evaluator.IOError("%s(): file '%s' tidak ditemukan", name, path)
	}
	if errors.Is(err, fs.ErrPermission) {
		return evaluator.IOError("%s(): tidak ada izin untuk '%s'", name, path)
	}
	return evaluator.IOError("%s(): %v", name, err)
}

func readText(name, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fileError(name, path, err)
	}
	if !utf8.Valid(data) {
		return "", evaluator.IOError("%s(): file '%s' bukan teks UTF-8", name, path)
	}
	return string(data), nil
}

func writeText(name, path, content string, flag int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fileError(name, path, err)
	}
	f, err := os.OpenFile(path, flag|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fileError(name, path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fileError(name, path, err)
	}
	if err := f.Close(); err != nil {
		return fileError(name, path, err)
	}
	return nil
}

// baca_file(path) → teks
func builtinReadFile(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("baca_file", args, 1, 1); err != nil {
		return nil, err
	}
	path, err := pathArg("baca_file", args[0])
	if err != nil {
		return nil, err
	}
	s, err := readText("baca_file", path)
	if err != nil {
		return nil, err
	}
	return evaluator.Str(s), nil
}

// tulis_file(path, isi) → kosong; parent directories are created.
func builtinWriteFile(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	return writeFile(h, "tulis_file", args, os.O_TRUNC)
}

// tambah_ke_file(path, isi) → kosong
func builtinAppendFile(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	return writeFile(h, "tambah_ke_file", args, os.O_APPEND)
}

func writeFile(h evaluator.Host, name string, args []evaluator.Value, flag int) (evaluator.Value, error) {
	if err := checkArgs(name, args, 2, 2); err != nil {
		return nil, err
	}
	path, err := pathArg(name, args[0])
	if err != nil {
		return nil, err
	}
	content, err := h.Str(args[1])
	if err != nil {
		return nil, err
	}
	if err := writeText(name, path, content, flag); err != nil {
		return nil, err
	}
	h.Logger().Debug("file written", "builtin", name, "path", path, "bytes", len(content))
	return evaluator.None{}, nil
}

// file_ada(path) → boolean
func builtinFileExists(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("file_ada", args, 1, 1); err != nil {
		return nil, err
	}
	path, err := pathArg("file_ada", args[0])
	if err != nil {
		return evaluator.Bool(false), nil
	}
	_, err = os.Stat(path)
	return evaluator.Bool(err == nil), nil
}

// hapus_file(path) → kosong
func builtinRemoveFile(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("hapus_file", args, 1, 1); err != nil {
		return nil, err
	}
	path, err := pathArg("hapus_file", args[0])
	if err != nil {
		return nil, err
	}
	if err := os.Remove(path); err != nil {
		return nil, fileError("hapus_file", path, err)
	}
	return evaluator.None{}, nil
}

// daftar_file([direktori]) → daftar nama, sorted
func builtinListDir(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("daftar_file", args, 0, 1); err != nil {
		return nil, err
	}
	var dir evaluator.Value = evaluator.Str(".")
	if len(args) == 1 {
		dir = args[0]
	}
	path, err := pathArg("daftar_file", dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fileError("daftar_file", path, err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)
	return strList(names), nil
}

// baca_json(path) → nilai
func builtinReadJSON(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("baca_json", args, 1, 1); err != nil {
		return nil, err
	}
	path, err := pathArg("baca_json", args[0])
	if err != nil {
		return nil, err
	}
	s, err := readText("baca_json", path)
	if err != nil {
		return nil, err
	}
	return evaluator.ParseJSON([]byte(s))
}

// tulis_json(path, nilai) → kosong, indented by two spaces
func builtinWriteJSON(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("tulis_json", args, 2, 2); err != nil {
		return nil, err
	}
	data, err := builtinToJSON(h, []evaluator.Value{args[1], evaluator.Int(2)})
	if err != nil {
		return nil, err
	}
	return writeFile(h, "tulis_json", []evaluator.Value{args[0], data}, os.O_TRUNC)
}

// baca_csv(path) → daftar of daftar teks
func builtinReadCSV(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("baca_csv", args, 1, 1); err != nil {
		return nil, err
	}
	path, err := pathArg("baca_csv", args[0])
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fileError("baca_csv", path, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, evaluator.ValueError("baca_csv(): %v", err)
	}
	rows := make([]evaluator.Value, len(records))
	for i, rec := range records {
		rows[i] = strList(rec)
	}
	return evaluator.NewList(rows), nil
}

// tulis_csv(path, baris) → kosong
func builtinWriteCSV(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("tulis_csv", args, 2, 2); err != nil {
		return nil, err
	}
	path, err := pathArg("tulis_csv", args[0])
	if err != nil {
		return nil, err
	}
	rows, err := h.Collect(args[1])
	if err != nil {
		return nil, err
	}
	records := make([][]string, len(rows))
	for i, row := range rows {
		cells, err := h.Collect(row)
		if err != nil {
			return nil, err
		}
		rec := make([]string, len(cells))
		for j, c := range cells {
			s, err := h.Str(c)
			if err != nil {
				return nil, err
			}
			rec[j] = s
		}
		records[i] = rec
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fileError("tulis_csv", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fileError("tulis_csv", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return nil, fileError("tulis_csv", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fileError("tulis_csv", path, err)
	}
	return evaluator.None{}, nil
}
