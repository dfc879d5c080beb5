package evaluator

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

func (ev *evaluator) format(v Value, spec string) (string, error) {
	if spec == "" {
		return ev.str(v)
	}
	return formatSpec(v, spec)
}

type fmtSpec struct {
	fill      rune
	align     byte
	sign      byte
	zero      bool
	width     int
	grouping  bool
	precision int
	verb      byte
}

func parseSpec(spec string) (fmtSpec, error) {
	fs := fmtSpec{fill: ' ', precision: -1}
	s := spec
	if r, size := utf8.DecodeRuneInString(s); size > 0 && len(s) > size && strings.IndexByte("<>^", s[size]) >= 0 {
		fs.fill, fs.align = r, s[size]
		s = s[size+1:]
	} else if s != "" && strings.IndexByte("<>^", s[0]) >= 0 {
		fs.align = s[0]
		s = s[1:]
	}
	if s != "" && (s[0] == '+' || s[0] == '-' || s[0] == ' ') {
		fs.sign = s[0]
		s = s[1:]
	}
	if s != "" && s[0] == '0' {
		fs.zero = true
		s = s[1:]
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 {
		fs.width, _ = strconv.Atoi(s[:i])
		s = s[i:]
	}
	if s != "" && s[0] == ',' {
		fs.grouping = true
		s = s[1:]
	}
	if s != "" && s[0] == '.' {
		j := 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j == 1 {
			return fs, valueErrorf("Presisi format tidak valid: '%s'", spec)
		}
		fs.precision, _ = strconv.Atoi(s[1:j])
		s = s[j:]
	}
	if len(s) > 1 {
		return fs, valueErrorf("Spesifikasi format tidak valid: '%s'", spec)
	}
	if s != "" {
		fs.verb = s[0]
	}
	return fs, nil
}

// formatSpec applies a format specification such as ".2f", ">8", "05d"
// or ",".
func formatSpec(v Value, spec string) (string, error) {
	fs, err := parseSpec(spec)
	if err != nil {
		return "", err
	}
	var body string
	numeric := false
	switch fs.verb {
	case 'd', 'x', 'o', 'b':
		n, ok := v.(Int)
		if !ok {
			return "", valueErrorf("Format '%c' membutuhkan bilangan bulat, bukan '%s'", fs.verb, TypeName(v))
		}
		base := map[byte]int{'d': 10, 'x': 16, 'o': 8, 'b': 2}[fs.verb]
		body = strconv.FormatInt(int64(n), base)
		numeric = true
	case 'f', 'e', 'g', '%':
		f, ok := toFloat(v)
		if !ok {
			return "", valueErrorf("Format '%c' membutuhkan angka, bukan '%s'", fs.verb, TypeName(v))
		}
		prec := fs.precision
		if prec < 0 {
			prec = 6
		}
		switch fs.verb {
		case '%':
			body = strconv.FormatFloat(f*100, 'f', prec, 64) + "%"
		case 'g':
			body = strconv.FormatFloat(f, 'g', prec, 64)
		default:
			body = strconv.FormatFloat(f, fs.verb, prec, 64)
		}
		numeric = true
	case 's':
		body = ToStr(v)
	case 0:
		switch n := v.(type) {
		case Int:
			body = strconv.FormatInt(int64(n), 10)
			numeric = true
		case Float:
			if fs.precision >= 0 {
				body = strconv.FormatFloat(float64(n), 'f', fs.precision, 64)
			} else {
				body = FormatFloat(float64(n))
			}
			numeric = true
		default:
			body = ToStr(v)
			if fs.precision >= 0 && utf8.RuneCountInString(body) > fs.precision {
				body = string([]rune(body)[:fs.precision])
			}
		}
	default:
		return "", valueErrorf("Kode format tidak dikenal: '%c'", fs.verb)
	}

	sign := ""
	if numeric {
		if strings.HasPrefix(body, "-") {
			sign, body = "-", body[1:]
		} else if fs.sign == '+' || fs.sign == ' ' {
			sign = string(fs.sign)
		}
		if fs.grouping {
			body = groupThousands(body)
		}
	}

	n := utf8.RuneCountInString(sign + body)
	if n >= fs.width {
		return sign + body, nil
	}
	pad := fs.width - n
	if fs.zero && numeric && fs.align == 0 {
		return sign + strings.Repeat("0", pad) + body, nil
	}
	align := fs.align
	if align == 0 {
		align = '<'
		if numeric {
			align = '>'
		}
	}
	fill := string(fs.fill)
	switch align {
	case '>':
		return strings.Repeat(fill, pad) + sign + body, nil
	case '^':
		left := pad / 2
		return strings.Repeat(fill, left) + sign + body + strings.Repeat(fill, pad-left), nil
	}
	return sign + body + strings.Repeat(fill, pad), nil
}

func groupThousands(digits string) string {
	intPart, frac, hasFrac := strings.Cut(digits, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// percentFormat implements "teks % nilai" with %s, %d, %f, %r and %%.
func percentFormat(tmpl string, arg Value) (Value, error) {
	args := []Value{arg}
	if t, ok := arg.(*Tuple); ok {
		args = t.Items
	}
	var b strings.Builder
	next := 0
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		j := i + 1
		for j < len(tmpl) && strings.IndexByte("0123456789.-+", tmpl[j]) >= 0 {
			j++
		}
		if j >= len(tmpl) {
			return nil, valueErrorf("Format '%%' tidak lengkap")
		}
		verb := tmpl[j]
		if verb == '%' {
			b.WriteByte('%')
			i = j
			continue
		}
		if next >= len(args) {
			return nil, typeErrorf("Argumen untuk format teks tidak cukup")
		}
		a := args[next]
		next++
		flags := tmpl[i+1 : j]
		var s string
		var err error
		switch verb {
		case 's':
			switch {
			case strings.HasPrefix(flags, "-"):
				s, err = formatSpec(a, "<"+flags[1:])
			case flags != "":
				s, err = formatSpec(a, ">"+flags)
			default:
				s = ToStr(a)
			}
		case 'r':
			s = Repr(a)
		case 'd', 'i':
			if f, ok := a.(Float); ok {
				a = Int(int64(f))
			}
			s, err = formatSpec(a, flags+"d")
		case 'f', 'e', 'g':
			s, err = formatSpec(a, flags+string(verb))
		default:
			return nil, valueErrorf("Kode format tidak didukung: '%%%c'", verb)
		}
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
		i = j
	}
	if next < len(args) {
		return nil, typeErrorf("Tidak semua argumen terpakai dalam format teks")
	}
	return Str(b.String()), nil
}
