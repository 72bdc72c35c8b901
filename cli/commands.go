package cli

import (
	"github.com/mitchellh/cli"
)

func Commands(ui cli.Ui) map[string]cli.CommandFactory {
	m := func() meta { return meta{ui: ui} }

	return map[string]cli.CommandFactory{
		"validate": func() (cli.Command, error) {
			return &ValidateCommand{meta: m()}, nil
		},
		"plan": func() (cli.Command, error) {
			return &PlanCommand{meta: m()}, nil
		},
		"grants": func() (cli.Command, error) {
			return &GrantsCommand{meta: m()}, nil
		},
		"apply": func() (cli.Command, error) {
			return &ApplyCommand{meta: m()}, nil
		},
		"destroy": func() (cli.Command, error) {
			return &DestroyCommand{meta: m()}, nil
		},
		"serve": func() (cli.Command, error) {
			return &ServeCommand{meta: m()}, nil
		},
		"version": func() (cli.Command, error) {
			return &versionCommand{ui: ui}, nil
		},
	}
}
