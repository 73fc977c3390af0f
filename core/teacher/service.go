package teacher

import (
	"context"
	goerrors "errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/walimu/core"
)

// ErrNotFound is returned when no teacher record exists under the given id.
var ErrNotFound = goerrors.New("teacher not found")

// Service manages the teacher roster. Roster CRUD is an admin concern;
// UpdateProfile is the teacher's self-service path.
type Service struct {
	store core.RecordStore
	mail  core.EmailService
	log   core.Logger
}

func NewService(store core.RecordStore, mail core.EmailService, log core.Logger) *Service {
	return &Service{store: store, mail: mail, log: log}
}

// Create adds a teacher to the roster, stamps the join date and sends a
// welcome email. The caller validates nt first.
func (svc *Service) Create(ctx context.Context, nt NewTeacher) (Teacher, error) {
	t := Teacher{
		Name:       nt.Name,
		Email:      nt.Email,
		Password:   nt.Password,
		Department: nt.Department,
		JoinDate:   time.Now().UTC().Format(time.RFC3339),
	}
	id, err := svc.store.Insert(ctx, Collection, t.fields())
	if err != nil {
		return Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	t.ID = id

	svc.mail.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: t.Name, Address: t.Email}},
		Subject: "Welcome to " + core.Conf.AppName,
		BodyStr: fmt.Sprintf(
			"Hi %s,\n\nAn account has been created for you in the %s department.\n"+
				"Sign in with your email address at %s to get started.\n",
			t.Name, t.Department, core.Conf.FrontendBaseURL,
		),
	})
	return t, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Teacher, error) {
	docs, err := svc.store.Query(ctx, Collection)
	if err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	teachers := make([]Teacher, 0, len(docs))
	for _, doc := range docs {
		teachers = append(teachers, fromDocument(doc))
	}
	return teachers, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Teacher, error) {
	fields, err := svc.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Cause(err) == core.ErrRecordNotFound {
			return Teacher{}, ErrNotFound
		}
		return Teacher{}, errors.Wrap(err, "fetching teacher")
	}
	return fromDocument(core.Document{ID: id, Fields: fields}), nil
}

// Update overwrites the admin-editable fields only; the record id and the
// stored password are never touched here.
func (svc *Service) Update(ctx context.Context, id string, ut UpdateTeacher) (Teacher, error) {
	fields := core.Fields{
		"name":       ut.Name,
		"email":      ut.Email,
		"department": ut.Department,
	}
	if err := svc.store.Update(ctx, Collection, id, fields); err != nil {
		if errors.Cause(err) == core.ErrRecordNotFound {
			return Teacher{}, ErrNotFound
		}
		return Teacher{}, errors.Wrap(err, "updating teacher")
	}
	return svc.GetByID(ctx, id)
}

// UpdateProfile applies a teacher's self-service edits. The password is only
// replaced when a new one was supplied.
func (svc *Service) UpdateProfile(ctx context.Context, id string, up UpdateProfile) (Teacher, error) {
	fields := core.Fields{
		"name":         up.Name,
		"email":        up.Email,
		"department":   up.Department,
		"joinDate":     up.JoinDate,
		"profileImage": up.ProfileImage,
	}
	if up.Password != "" {
		fields["password"] = up.Password
	}
	if err := svc.store.Update(ctx, Collection, id, fields); err != nil {
		if errors.Cause(err) == core.ErrRecordNotFound {
			return Teacher{}, ErrNotFound
		}
		return Teacher{}, errors.Wrap(err, "updating teacher profile")
	}
	return svc.GetByID(ctx, id)
}

// SetPassword replaces a teacher's password (admin CLI path).
func (svc *Service) SetPassword(ctx context.Context, id, password string) error {
	err := svc.store.Update(ctx, Collection, id, core.Fields{"password": password})
	if errors.Cause(err) == core.ErrRecordNotFound {
		return ErrNotFound
	}
	return errors.Wrap(err, "setting teacher password")
}

// GetByEmail finds a roster entry by email (admin CLI path).
func (svc *Service) GetByEmail(ctx context.Context, email string) (Teacher, error) {
	docs, err := svc.store.Query(ctx, Collection, core.Eq{Field: "email", Value: email})
	if err != nil {
		return Teacher{}, errors.Wrap(err, "querying teachers by email")
	}
	if len(docs) == 0 {
		return Teacher{}, ErrNotFound
	}
	return fromDocument(docs[0]), nil
}

// Delete removes a roster entry; deleting an absent id is tolerated.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return errors.Wrap(svc.store.Delete(ctx, Collection, id), "deleting teacher")
}
