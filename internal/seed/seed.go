package seed

import (
	"context"
	"errors"
	"strings"

	authdomain "github.com/smallbiznis/bizdesk/internal/auth/domain"
	companydomain "github.com/smallbiznis/bizdesk/internal/company/domain"
	"github.com/smallbiznis/bizdesk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultAdminDisplay = "BizDesk Admin"

type Params struct {
	fx.In

	Config     config.Config
	Log        *zap.Logger
	CompanySvc companydomain.Service
	AuthSvc    authdomain.Service
}

// Seeder creates the default company and, when credentials are configured,
// its first admin user.
type Seeder struct {
	cfg        config.BootstrapConfig
	log        *zap.Logger
	companySvc companydomain.Service
	authSvc    authdomain.Service
}

func New(p Params) *Seeder {
	return &Seeder{
		cfg:        p.Config.Bootstrap,
		log:        p.Log.Named("seed"),
		companySvc: p.CompanySvc,
		authSvc:    p.AuthSvc,
	}
}

func (s *Seeder) Run(ctx context.Context) (*companydomain.Company, error) {
	company, err := s.companySvc.Ensure(ctx, s.cfg.CompanyName)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(s.cfg.AdminEmail)
	if email == "" || s.cfg.AdminPassword == "" {
		s.log.Info("admin bootstrap skipped", zap.String("company_id", company.ID.String()))
		return company, nil
	}

	if _, err := s.CreateUser(ctx, company, email, s.cfg.AdminPassword, defaultAdminDisplay); err != nil {
		return nil, err
	}
	return company, nil
}

// CreateUser adds a user to company. An existing user with the same email is left untouched.
func (s *Seeder) CreateUser(ctx context.Context, company *companydomain.Company, email, password, displayName string) (*authdomain.User, error) {
	user, err := s.authSvc.CreateUser(ctx, authdomain.CreateUserRequest{
		CompanyID:   company.ID,
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	})
	if errors.Is(err, authdomain.ErrUserExists) {
		s.log.Info("user already exists", zap.String("email", email))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("user seeded",
		zap.String("company_id", company.ID.String()),
		zap.String("user_id", user.ID.String()),
	)
	return user, nil
}
