package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories 绑定到同一个 *gorm.DB（或同一个事务）的一组存储
type Repositories struct {
	db   *gorm.DB
	inTx bool

	Image ImageStore
	Owner OwnerStore
}

func NewImageRepository(db *gorm.DB) ImageStore {
	return &ImageRepository{db: db}
}

func NewOwnerRepository(db *gorm.DB) OwnerStore {
	return &OwnerRepository{db: db}
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:    db,
		Image: NewImageRepository(db),
		Owner: NewOwnerRepository(db),
	}
}

// Transaction 在一个数据库事务中执行 fn，fn 收到的存储均绑定到该事务。
// fn 返回 nil 时提交，返回错误或 panic 时回滚。已处于事务中时直接复用外层事务。
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepos := NewRepositories(tx)
		txRepos.inTx = true
		return fn(txRepos)
	})
}
