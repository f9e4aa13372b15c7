package param

import (
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NikitaCOEUR/paramkit/pkg/cmderr"
	"github.com/NikitaCOEUR/paramkit/pkg/rawarg"
)

// String accepts any single token
func String(name string) Parameter[string] {
	return Single(name, func(s string) (string, error) {
		return s, nil
	})
}

// Int parses a base 10 int
func Int(name string) Parameter[int] {
	return Single(name, strconv.Atoi)
}

// Int64 parses a base 10 int64
func Int64(name string) Parameter[int64] {
	return Single(name, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// Uint parses a non-negative base 10 integer
func Uint(name string) Parameter[uint] {
	return Single(name, func(s string) (uint, error) {
		v, err := strconv.ParseUint(s, 10, 0)
		return uint(v), err
	})
}

// Float parses a float64
func Float(name string) Parameter[float64] {
	return Single(name, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// BigInt parses an arbitrary precision integer
func BigInt(name string) Parameter[*big.Int] {
	return Single(name, func(s string) (*big.Int, error) {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("%q is not a valid integer", s)
		}
		return v, nil
	})
}

// Decimal parses an arbitrary precision decimal number
func Decimal(name string) Parameter[decimal.Decimal] {
	return Single(name, decimal.NewFromString)
}

var boolWords = map[string]bool{
	"true": true, "t": true, "yes": true, "y": true, "on": true, "1": true,
	"false": false, "f": false, "no": false, "n": false, "off": false, "0": false,
}

// Bool parses common spellings of true and false
func Bool(name string) Parameter[bool] {
	return Single(name, func(s string) (bool, error) {
		v, ok := boolWords[strings.ToLower(s)]
		if !ok {
			return false, fmt.Errorf("%q is not a valid boolean", s)
		}
		return v, nil
	})
}

// UUID parses a UUID in any of the forms accepted by uuid.Parse
func UUID(name string) Parameter[uuid.UUID] {
	return Single(name, uuid.Parse)
}

// URL parses an absolute URL
func URL(name string) Parameter[*url.URL] {
	return Single(name, func(s string) (*url.URL, error) {
		u, err := url.Parse(s)
		if err != nil {
			return nil, err
		}
		if !u.IsAbs() {
			return nil, fmt.Errorf("no protocol: %s", s)
		}
		return u, nil
	})
}

type remainingString struct {
	name string
}

// RemainingString joins every remaining token with single spaces
func RemainingString(name string) Parameter[string] {
	return &remainingString{name: name}
}

func (p *remainingString) Name() string { return p.name }

func (p *remainingString) Parse(_ Source, _ RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, string, error) {
	if len(args) == 0 {
		return args, "", cmderr.NotEnoughArgs()
	}
	return nil, strings.Join(rawarg.Contents(args), " "), nil
}

func (p *remainingString) Suggestions(_ Source, _ RunContext, _ []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	return nil, nil
}

func (p *remainingString) Usage(_ Source) string { return DefaultUsage(p.name) + "..." }
