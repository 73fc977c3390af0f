package main

import (
	"context"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	ctx := context.Background()
	t, err := cli.teacherSvc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return cli.teacherSvc.SetPassword(ctx, t.ID, pwd)
}
