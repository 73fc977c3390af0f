package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/walimu/core/teacher"
)

// addTeacher updates or creates a roster record.
func (cli *commandLine) addTeacher(name, email, department, pwd string) error {
	ctx := context.Background()

	nt := teacher.NewTeacher{
		Name:       name,
		Email:      email,
		Department: department,
		Password:   pwd,
	}
	if err := nt.Validate(); err != nil {
		return err
	}

	t, err := cli.teacherSvc.GetByEmail(ctx, nt.Email)
	if err != nil {
		if errors.Cause(err) != teacher.ErrNotFound {
			return err
		}
		_, err = cli.teacherSvc.Create(ctx, nt)
		return err
	}

	ut := teacher.UpdateTeacher{
		Name:       nt.Name,
		Email:      nt.Email,
		Department: nt.Department,
	}
	if err = ut.Validate(); err != nil {
		return err
	}
	if _, err = cli.teacherSvc.Update(ctx, t.ID, ut); err != nil {
		return err
	}
	return cli.teacherSvc.SetPassword(ctx, t.ID, pwd)
}
