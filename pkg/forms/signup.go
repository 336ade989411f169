package forms

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	qikoffice "github.com/qikoffice/qikoffice-go"
	"github.com/qikoffice/qikoffice-go/pkg/constants"
	"github.com/qikoffice/qikoffice-go/pkg/models"
)

type SignupAPI interface {
	Signup(ctx context.Context, req qikoffice.SignupRequest) (*qikoffice.SignupResponse, error)
}

type SignupValues struct {
	Name    string
	Email   string
	Company string
}

// Signup is the account creation form.
type Signup struct {
	status
	api SignupAPI

	valuesMu sync.Mutex
	values   SignupValues

	// OnSignedUp is called after a successful submit.
	OnSignedUp func(models.User)
}

func NewSignup(api SignupAPI, opts ...Option) *Signup {
	o := buildOptions(opts)
	return &Signup{
		status: status{op: "signup", fallback: "Sign up failed", reporter: o.reporter},
		api:    api,
		values: SignupValues{Company: constants.DefaultCompany},
	}
}

func (f *Signup) Values() SignupValues {
	f.valuesMu.Lock()
	defer f.valuesMu.Unlock()
	return f.values
}

func (f *Signup) Set(v SignupValues) {
	f.valuesMu.Lock()
	defer f.valuesMu.Unlock()
	f.values = v
}

func (v SignupValues) validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("name: %w", ErrRequired)
	}
	if strings.TrimSpace(v.Email) == "" {
		return fmt.Errorf("email: %w", ErrRequired)
	}
	if _, err := mail.ParseAddress(v.Email); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, v.Email)
	}
	return nil
}

// Submit posts the form. The returned user carries the server-issued id and
// api key together with the submitted values.
func (f *Signup) Submit(ctx context.Context) (models.User, error) {
	if err := f.begin(); err != nil {
		return models.User{}, err
	}
	v := f.Values()
	if err := v.validate(); err != nil {
		return models.User{}, f.finish(err)
	}

	resp, err := f.api.Signup(ctx, qikoffice.SignupRequest{Name: v.Name, Email: v.Email, Company: v.Company})
	if err != nil {
		return models.User{}, f.finish(err)
	}
	user := models.User{
		UserID:  resp.ID,
		APIKey:  resp.APIKey,
		Name:    v.Name,
		Email:   v.Email,
		Company: v.Company,
	}
	f.finish(nil)
	if f.OnSignedUp != nil {
		f.OnSignedUp(user)
	}
	return user, nil
}
