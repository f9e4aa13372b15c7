package host

import (
	"github.com/NikitaCOEUR/paramkit/internal/config"
	"github.com/NikitaCOEUR/paramkit/pkg/cmderr"
	"github.com/NikitaCOEUR/paramkit/pkg/command"
	"github.com/NikitaCOEUR/paramkit/pkg/param"
)

// Messages of the validators
const (
	MsgPlayersOnly    = "This command can only be used by players"
	MsgUnknownSender  = "This command cannot be used from here"
	MsgNoCommandPerms = "You do not have permission to use this command"
)

// AnySender accepts every sender of the host
func AnySender() command.UserValidator[*Sender] {
	return command.ValidatorFunc[*Sender](func(src param.Source) (*Sender, error) {
		s, ok := src.(*Sender)
		if !ok {
			return nil, cmderr.NewError(MsgUnknownSender)
		}
		return s, nil
	})
}

// PlayerSender only accepts players
func PlayerSender() command.UserValidator[*Sender] {
	return command.ValidatorFunc[*Sender](func(src param.Source) (*Sender, error) {
		s, err := AnySender().Validate(src)
		if err != nil {
			return nil, err
		}
		if !s.IsPlayer() {
			return nil, cmderr.NewError(MsgPlayersOnly)
		}
		return s, nil
	})
}

// RequirePermission rejects senders accepted by v that do not hold perm
func RequirePermission(perm string, v command.UserValidator[*Sender]) command.UserValidator[*Sender] {
	return command.ValidatorFunc[*Sender](func(src param.Source) (*Sender, error) {
		s, err := v.Validate(src)
		if err != nil {
			return nil, err
		}
		if !s.Has(perm) {
			return nil, cmderr.NewError(MsgNoCommandPerms)
		}
		return s, nil
	})
}

// validatorFor picks the validator declared by a command
func validatorFor(cc config.CommandConfig) command.UserValidator[*Sender] {
	v := AnySender()
	if cc.Sender == config.SenderPlayer {
		v = PlayerSender()
	}
	if cc.Permission != "" {
		v = RequirePermission(cc.Permission, v)
	}
	return v
}
