// Package shape turns the parameter lists of the config file into parameter
// trees.
package shape

import (
	"errors"
	"fmt"

	"github.com/NikitaCOEUR/paramkit/internal/config"
	"github.com/NikitaCOEUR/paramkit/internal/derrors"
	"github.com/NikitaCOEUR/paramkit/pkg/param"
)

// MsgNoPlayers is reported when a players parameter matches nobody
const MsgNoPlayers = "No player was found"

// Resolver supplies the host entities parameters are resolved against
type Resolver interface {
	// Players lists the players visible to src
	Players(src param.Source) []param.Entity[string]
	// Worlds lists the worlds of the host
	Worlds() []param.Entity[string]
	// Self returns the player name of src, if src is a player
	Self(src param.Source) (string, bool)
}

var errNotAPlayer = errors.New("sender is not a player")

// Build derives the record parameter of a command from its declared params.
// Flags are parsed first wherever they appear on the line; the fields of the
// record keep their declaration order.
func Build(command string, params []config.ParamConfig, r Resolver) (param.Parameter[param.Record], error) {
	positional := param.NewRecord(command)
	flags := param.NewRecord(command)
	hasFlags := false

	for _, pc := range params {
		p, err := buildField(command, pc, r)
		if err != nil {
			return nil, err
		}
		if pc.Flag {
			flags.Field(pc.Name, p)
			hasFlags = true
			continue
		}
		positional.Field(pc.Name, p)
	}

	if !hasFlags {
		return positional.Build(), nil
	}

	order := make([]string, 0, len(params))
	for _, pc := range params {
		order = append(order, pc.Name)
	}
	return param.Map(param.Flags(flags.Build(), positional.Build()),
		func(f param.Flagged[param.Record, param.Record]) (param.Record, error) {
			return reorder(order, f.Flags, f.Value), nil
		}), nil
}

// reorder merges flag and positional fields back into declaration order
func reorder(order []string, flags, positional param.Record) param.Record {
	out := param.Record{Fields: make([]param.FieldValue, 0, len(order))}
	for _, name := range order {
		if v, ok := flags.Get(name); ok {
			out.Fields = append(out.Fields, param.FieldValue{Name: name, Value: v})
			continue
		}
		if v, ok := positional.Get(name); ok {
			out.Fields = append(out.Fields, param.FieldValue{Name: name, Value: v})
		}
	}
	return out
}

// buildField applies the modifiers of pc around its base parameter
func buildField(command string, pc config.ParamConfig, r Resolver) (param.Parameter[any], error) {
	if pc.Flag {
		return buildFlag(command, pc, r)
	}

	p, err := buildBase(command, pc, r)
	if err != nil {
		return nil, err
	}
	if pc.Repeated {
		p = param.Untyped(param.Repeated(p))
	}
	if pc.Permission != "" {
		p = param.NeedPermission(pc.Permission, p)
	}
	if pc.Optional {
		p = deref(param.Optional(p), nil)
	}
	return p, nil
}

func buildFlag(command string, pc config.ParamConfig, r Resolver) (param.Parameter[any], error) {
	if pc.Repeated || pc.Type == "remaining" || pc.Type == "any_of" {
		return nil, derrors.NewDefinitionError(command, pc.Name, fmt.Sprintf("a %s parameter cannot be a flag", pc.Type))
	}

	var p param.Parameter[any]
	var absent any
	if pc.Type == "bool" {
		p = param.Untyped(param.BoolFlag(pc.Name))
		absent = false
	} else {
		base, err := buildBase(command, pc, r)
		if err != nil {
			return nil, err
		}
		p = deref(param.ValueFlag(pc.Name, base), nil)
	}

	if pc.Permission != "" {
		// Unprivileged senders do not get the flag at all
		p = deref(param.Optional(param.NeedPermission(pc.Permission, p)), absent)
	}
	return p, nil
}

// deref unwraps an optional value, using absent when it is missing
func deref(p param.Parameter[*any], absent any) param.Parameter[any] {
	return param.Map(p, func(v *any) (any, error) {
		if v == nil {
			return absent, nil
		}
		return *v, nil
	})
}

func buildBase(command string, pc config.ParamConfig, r Resolver) (param.Parameter[any], error) {
	name := pc.Name
	switch pc.Type {
	case "string":
		return param.Untyped(param.String(name)), nil
	case "int":
		return param.Untyped(param.Int(name)), nil
	case "int64":
		return param.Untyped(param.Int64(name)), nil
	case "uint":
		return param.Untyped(param.Uint(name)), nil
	case "float":
		return param.Untyped(param.Float(name)), nil
	case "bigint":
		return param.Untyped(param.BigInt(name)), nil
	case "decimal":
		return param.Untyped(param.Decimal(name)), nil
	case "bool":
		return param.Untyped(param.Bool(name)), nil
	case "uuid":
		return param.Untyped(param.UUID(name)), nil
	case "url":
		return param.Untyped(param.URL(name)), nil
	case "datetime":
		return param.Untyped(param.DateTime(name)), nil
	case "duration":
		return param.Untyped(param.Duration(name)), nil
	case "remaining":
		return param.Untyped(param.RemainingString(name)), nil
	case "choice":
		return choice(command, pc)
	case "literal":
		if pc.Value == "" {
			return nil, derrors.NewDefinitionError(command, name, "a literal needs a value")
		}
		return param.Untyped(param.Named(name, param.Literal(pc.Value))), nil
	case "player":
		return player(pc, r), nil
	case "players":
		return players(name, r), nil
	case "world":
		worlds := param.Entities(name, func(param.Source, param.RunContext) []param.Entity[string] {
			return r.Worlds()
		})
		return param.Untyped(param.OnlyOne(worlds)), nil
	case "any_of":
		return anyOf(command, pc, r)
	default:
		return nil, derrors.NewDefinitionError(command, name, fmt.Sprintf("unknown parameter type '%s'", pc.Type))
	}
}

func choice(command string, pc config.ParamConfig) (param.Parameter[any], error) {
	if len(pc.Choices) == 0 {
		return nil, derrors.NewDefinitionError(command, pc.Name, "a choice needs at least one value")
	}
	values := make(map[string]string, len(pc.Choices))
	for _, c := range pc.Choices {
		values[c] = c
	}
	if pc.ShowAll {
		return param.Untyped(param.ChoicesShown(pc.Name, values)), nil
	}
	return param.Untyped(param.Choices(pc.Name, values)), nil
}

func playerEntities(name string, r Resolver) param.Parameter[[]string] {
	return param.Entities(name, func(src param.Source, _ param.RunContext) []param.Entity[string] {
		return r.Players(src)
	})
}

func player(pc config.ParamConfig, r Resolver) param.Parameter[any] {
	p := param.OnlyOne(playerEntities(pc.Name, r))
	if !pc.OrSelf {
		return param.Untyped(p)
	}
	return param.Untyped(param.OrSource(p, func(src param.Source, _ param.RunContext) (string, error) {
		if self, ok := r.Self(src); ok {
			return self, nil
		}
		return "", errNotAPlayer
	}))
}

func players(name string, r Resolver) param.Parameter[any] {
	return param.Map(playerEntities(name, r), func(names []string) (any, error) {
		if len(names) == 0 {
			return nil, errors.New(MsgNoPlayers)
		}
		return names, nil
	})
}

func anyOf(command string, pc config.ParamConfig, r Resolver) (param.Parameter[any], error) {
	if len(pc.AnyOf) == 0 {
		return nil, derrors.NewDefinitionError(command, pc.Name, "any_of needs at least one alternative")
	}
	b := param.NewAlternatives(pc.Name)
	for _, alt := range pc.AnyOf {
		p, err := buildField(command, alt, r)
		if err != nil {
			return nil, err
		}
		b.Variant(alt.Name, p)
	}
	return param.Untyped(b.Build()), nil
}
