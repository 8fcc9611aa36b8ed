package crop

import "context"

type Repository interface {
	List(context context.Context) ([]*Crop, error)
	GetBySlug(context context.Context, slug string) (*Crop, error)
}
