package service

import (
	"context"
	"strings"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/repository"
)

type clientService struct {
	store repository.Store
}

func NewClientService(store repository.Store) ClientService {
	return &clientService{store: store}
}

func (s *clientService) Create(ctx context.Context, c *domain.Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	return domain.WrapStorage("client.Create", s.store.Clients().Create(ctx, c))
}

func (s *clientService) Get(ctx context.Context, id int32) (*domain.Client, error) {
	c, err := s.store.Clients().GetByID(ctx, id)
	return c, domain.WrapStorage("client.Get", err)
}

func (s *clientService) List(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.store.Clients().List(ctx)
	return clients, domain.WrapStorage("client.List", err)
}

func (s *clientService) Update(ctx context.Context, c *domain.Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	return domain.WrapStorage("client.Update", s.store.Clients().Update(ctx, c))
}

func (s *clientService) Delete(ctx context.Context, id int32) error {
	return domain.WrapStorage("client.Delete", s.store.Clients().Delete(ctx, id))
}
