package crop

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (service *Service) List(context context.Context) ([]*Crop, error) {
	return service.repo.List(context)
}

func (service *Service) GetBySlug(context context.Context, slug string) (*Crop, error) {
	return service.repo.GetBySlug(context, slug)
}
