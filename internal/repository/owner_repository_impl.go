package repository

import (
	"context"
	"errors"

	"image-management-server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OwnerRepository struct {
	db *gorm.DB
}

func ownerTable(owner model.OwnerRef) any {
	if owner.Kind == model.OwnerKindLead {
		return &model.Lead{}
	}
	return &model.Customer{}
}

// CountOwners 统计客户或线索的总数
func (r *OwnerRepository) CountOwners(ctx context.Context, kind model.OwnerKind) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(ownerTable(model.OwnerRef{Kind: kind})).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// LockOwner 在当前事务内对归属方行加排他锁（SELECT ... FOR UPDATE），返回归属方是否存在。
// SQLite 不支持行锁，其写事务本身已串行。
func (r *OwnerRepository) LockOwner(ctx context.Context, owner model.OwnerRef) (bool, error) {
	query := r.db.WithContext(ctx).Model(ownerTable(owner)).Select("id").Where("id = ?", owner.ID)
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var ids []uint
	if err := query.Limit(1).Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("is_main_image desc").Order("created_at asc").Order("id asc")
}

func (r *OwnerRepository) FindCustomer(ctx context.Context, id uint) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).Preload("Images", orderedImages).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *OwnerRepository) FindLead(ctx context.Context, id uint) (*model.Lead, error) {
	var lead model.Lead
	if err := r.db.WithContext(ctx).Preload("Images", orderedImages).First(&lead, id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *OwnerRepository) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	customers := make([]model.Customer, 0)
	if err := r.db.WithContext(ctx).Order("id asc").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *OwnerRepository) ListLeads(ctx context.Context) ([]model.Lead, error) {
	leads := make([]model.Lead, 0)
	if err := r.db.WithContext(ctx).Order("id asc").Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *OwnerRepository) CreateCustomer(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *OwnerRepository) CreateLead(ctx context.Context, lead *model.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

// CountImagesByOwners 批量统计一组客户或线索的图片数量，没有图片的归属方不出现在结果中。
func (r *OwnerRepository) CountImagesByOwners(ctx context.Context, kind model.OwnerKind, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	column := model.OwnerRef{Kind: kind}.Column()

	type row struct {
		OwnerID uint
		Total   int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.ProfileImage{}).
		Select(column+" AS owner_id, COUNT(*) AS total").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, item := range rows {
		counts[item.OwnerID] = item.Total
	}
	return counts, nil
}

// IsNotFound 判断错误是否为记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
