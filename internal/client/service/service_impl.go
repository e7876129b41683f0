package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/internal/clock"
	"github.com/smallbiznis/bizdesk/internal/client/domain"
	"github.com/smallbiznis/bizdesk/internal/companyctx"
	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
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
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Client{}, domain.ErrInvalidCompany
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email != "" && !strings.Contains(email, "@") {
		return domain.Client{}, domain.ErrInvalidEmail
	}

	now := s.clock.Now()
	client := domain.Client{
		ID:        s.genID.Generate(),
		CompanyID: companyID,
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, &client); err != nil {
		s.log.Error("failed to insert client", zap.Error(err))
		return domain.Client{}, err
	}

	return client, nil
}

func (s *Service) List(ctx context.Context, req domain.ListClientRequest) (domain.ListClientResponse, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListClientResponse{}, domain.ErrInvalidCompany
	}

	pageSize := pagination.Normalize(req.PageSize)
	items, err := s.repo.List(ctx, companyID, domain.ListClientFilter{
		Name: strings.TrimSpace(req.Name),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListClientResponse{}, err
	}

	items, pageInfo := pagination.Trim(items, pageSize, func(c *domain.Client) pagination.Cursor {
		return pagination.Cursor{
			ID:        strconv.FormatInt(c.ID.Int64(), 10),
			CreatedAt: c.CreatedAt.Format(time.RFC3339Nano),
		}
	})

	clients := make([]domain.Client, 0, len(items))
	for _, item := range items {
		clients = append(clients, *item)
	}

	return domain.ListClientResponse{PageInfo: pageInfo, Clients: clients}, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Client, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidCompany
	}

	items, err := s.repo.ListAll(ctx, companyID)
	if err != nil {
		return nil, err
	}

	clients := make([]domain.Client, 0, len(items))
	for _, item := range items {
		clients = append(clients, *item)
	}
	return clients, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Client{}, domain.ErrInvalidCompany
	}

	clientID, err := parseID(id)
	if err != nil {
		return domain.Client{}, err
	}

	item, err := s.repo.FindByID(ctx, companyID, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	if item == nil {
		return domain.Client{}, domain.ErrNotFound
	}

	return *item, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
