package sqlsafe

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrProhibitedVerb    = errors.New("only read-only SELECT statements are allowed")
	ErrNoReadVerb        = errors.New("statement must start with SELECT")
	ErrMultipleStatement = errors.New("multiple statements are not allowed here")
	ErrUnboundParam      = errors.New("statement has placeholders but no value to bind")
)

var (
	prohibitedRe = regexp.MustCompile(`(?i)\b(INSERT|UPDATE|DELETE|DROP|ALTER|TRUNCATE|CREATE|GRANT|REVOKE|MERGE|VACUUM|COPY|\\copy|SET\s+|SHOW\s+)\b`)
	selectRe     = regexp.MustCompile(`(?is)^\s*(SELECT|WITH)\b`)
)

// Validate checks one generated statement: exactly one trailing terminator
// stripped, no write/DDL verb anywhere, and a leading read verb. The verb
// scan is deliberately blunt — a prohibited keyword inside a string literal
// still rejects, favoring false rejection over false acceptance.
func Validate(sql string) error {
	body := strings.TrimSpace(sql)
	body = strings.TrimSuffix(body, ";")
	if strings.Contains(body, ";") {
		return ErrMultipleStatement
	}
	if prohibitedRe.MatchString(body) {
		return ErrProhibitedVerb
	}
	if !selectRe.MatchString(body) {
		return ErrNoReadVerb
	}
	return nil
}

// CountPlaceholders counts %s tokens outside single-quoted string literals.
// The scan walks left to right flipping an in-string flag on each quote; a
// doubled '' inside a string is the escape form and stays inside.
func CountPlaceholders(sql string) int {
	count := 0
	inString := false
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if inString {
			if c == '\'' {
				if i+1 < len(sql) && sql[i+1] == '\'' {
					i++ // escaped quote, still inside
					continue
				}
				inString = false
			}
			continue
		}
		switch c {
		case '\'':
			inString = true
		case '%':
			if i+1 < len(sql) && sql[i+1] == 's' {
				count++
				i++
			}
		}
	}
	return count
}

// Bind rewrites every unquoted %s to the driver placeholder and repeats the
// single scalar once per occurrence. Zero placeholders pass through with no
// parameters; placeholders with an empty scalar fail.
func Bind(sql string, scalar string) (string, []interface{}, error) {
	n := CountPlaceholders(sql)
	if n == 0 {
		return sql, nil, nil
	}
	if scalar == "" {
		return "", nil, fmt.Errorf("%w: %d placeholder(s)", ErrUnboundParam, n)
	}

	var sb strings.Builder
	sb.Grow(len(sql))
	params := make([]interface{}, 0, n)

	inString := false
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if inString {
			sb.WriteByte(c)
			if c == '\'' {
				if i+1 < len(sql) && sql[i+1] == '\'' {
					sb.WriteByte(sql[i+1])
					i++
					continue
				}
				inString = false
			}
			continue
		}
		switch {
		case c == '\'':
			inString = true
			sb.WriteByte(c)
		case c == '%' && i+1 < len(sql) && sql[i+1] == 's':
			sb.WriteByte('?')
			params = append(params, scalar)
			i++
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), params, nil
}
