package repository

import (
	"context"

	"image-management-server/internal/model"
)

type OwnerStore interface {
	CountOwners(ctx context.Context, kind model.OwnerKind) (int64, error)
	LockOwner(ctx context.Context, owner model.OwnerRef) (bool, error)
	FindCustomer(ctx context.Context, id uint) (*model.Customer, error)
	FindLead(ctx context.Context, id uint) (*model.Lead, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	ListLeads(ctx context.Context) ([]model.Lead, error)
	CreateCustomer(ctx context.Context, customer *model.Customer) error
	CreateLead(ctx context.Context, lead *model.Lead) error
	CountImagesByOwners(ctx context.Context, kind model.OwnerKind, ids []uint) (map[uint]int64, error)
}
