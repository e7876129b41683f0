package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/internal/clock"
	"github.com/smallbiznis/bizdesk/internal/companyctx"
	"github.com/smallbiznis/bizdesk/internal/project/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("project.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProjectRequest) (domain.Project, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Project{}, domain.ErrInvalidCompany
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Project{}, domain.ErrInvalidName
	}

	var clientID *snowflake.ID
	if raw := strings.TrimSpace(req.ClientID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return domain.Project{}, domain.ErrInvalidClientID
		}
		clientID = &id
	}

	now := s.clock.Now()
	project := domain.Project{
		ID:          s.genID.Generate(),
		CompanyID:   companyID,
		ClientID:    clientID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, &project); err != nil {
		s.log.Error("failed to insert project", zap.Error(err))
		return domain.Project{}, err
	}

	return project, nil
}

func (s *Service) List(ctx context.Context, clientID string) ([]domain.Project, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidCompany
	}

	var filter snowflake.ID
	if raw := strings.TrimSpace(clientID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidClientID
		}
		filter = id
	}

	items, err := s.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(items))
	for _, item := range items {
		if !item.BelongsTo(filter) {
			continue
		}
		projects = append(projects, *item)
	}
	return projects, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Project, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Project{}, domain.ErrInvalidCompany
	}

	projectID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || projectID == 0 {
		return domain.Project{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, companyID, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	if item == nil {
		return domain.Project{}, domain.ErrNotFound
	}
	return *item, nil
}
